package stand

import "sort"

// Assembler fills bouquet designs from a flower pool. Usage is Weigh, then
// Sort, then Assemble; Completed returns the finished bouquets afterward.
// An Assembler is single-use and not safe for concurrent use.
type Assembler struct {
	designs []*Design
	stand   *Stand
}

// NewAssembler creates an assembler over the given intake. The flower pool
// is built from the intake's flower lots; designs are filled in place, so
// the intake's Design values reflect assembly results afterward.
func NewAssembler(intake Intake) *Assembler {
	st := NewStand()
	for _, lot := range intake.Flowers {
		st.AddFlowers(lot.Specie, lot.Size, lot.Count)
	}

	designs := make([]*Design, len(intake.Designs))
	copy(designs, intake.Designs)

	return &Assembler{
		designs: designs,
		stand:   st,
	}
}

// weightOf is the scarcity weight of wanting quantity flowers out of a
// supply of total. It approaches 1 as the demand approaches the whole
// supply. total must be at least 1.
func weightOf(total, quantity int) float64 {
	return 1 - float64(total-quantity)/float64(total)
}

// Weigh computes each design's assembly priority from flower scarcity: big
// bouquets of rare flowers weigh the most and should be assembled first.
// Designs whose demands already exceed the pool are deactivated. Weights are
// computed against the intake totals, so Weigh must be called before any
// flowers are reserved.
func (a *Assembler) Weigh() {
	for _, d := range a.designs {
		if d.Total > a.stand.TotalFor(d.Size) {
			d.active = false
		} else {
			for _, f := range d.Flowers {
				avail := a.stand.Quantity(f.Specie, d.Size)
				if f.DesignQuantity > avail {
					d.active = false
					break
				}
				f.weight = weightOf(avail, f.DesignQuantity)
			}
		}

		if !d.active {
			d.weight = 0
			continue
		}

		d.weight = weightOf(a.stand.TotalFor(d.Size), d.Total)
		for _, f := range d.Flowers {
			if f.InDesign() {
				d.weight += f.weight
			}
		}
	}
}

// Sort orders designs by descending weight. The sort is stable so designs
// of equal weight keep their intake order.
func (a *Assembler) Sort() {
	sort.SliceStable(a.designs, func(i, j int) bool {
		return a.designs[i].weight > a.designs[j].weight
	})
}

// Assemble fills designs from the pool until no further progress can be
// made. Each round reserves the design flowers every active design calls
// for, then tops bouquets up to their totals with extras; if any active
// design is still incomplete after that, the first such design is given up
// on (its flowers return to the pool) and another round runs with the freed
// flowers.
func (a *Assembler) Assemble() {
	for {
		a.fillRequired()
		a.fillExtras()

		var victim *Design
		for _, d := range a.designs {
			if d.active && !d.Completed() {
				victim = d
				break
			}
		}
		if victim == nil {
			break
		}

		a.unreserve(victim)
		victim.active = false
	}
}

// Completed returns the designs that finished as complete bouquets, in
// assembly priority order.
func (a *Assembler) Completed() []*Design {
	var done []*Design
	for _, d := range a.designs {
		if d.Completed() {
			done = append(done, d)
		}
	}
	return done
}

func (a *Assembler) fillRequired() {
	for _, d := range a.designs {
		if !d.active || d.Completed() || d.DesignCompleted() {
			continue
		}
		for _, f := range d.Flowers {
			if !a.addRequired(f, d) {
				// cannot fill this design right now; free what it holds so
				// other designs can use it
				a.unreserve(d)
				break
			}
		}
	}
}

func (a *Assembler) fillExtras() {
	for _, d := range a.designs {
		if d.Completed() || !d.active || !d.DesignCompleted() {
			continue
		}

		for _, f := range d.Flowers {
			a.addExtra(d, f.Specie)
			if d.Completed() {
				break
			}
		}
		if d.Completed() {
			continue
		}

		for _, specie := range a.stand.Species() {
			a.addExtra(d, specie)
			if d.Completed() {
				break
			}
		}
	}
}

func (a *Assembler) addRequired(f *Flower, d *Design) bool {
	req := f.Required()
	if req == 0 {
		return true
	}
	if req > a.stand.Quantity(f.Specie, d.Size) {
		return false
	}

	f.Quantity += req
	a.stand.take(f.Specie, d.Size, req)
	return true
}

func (a *Assembler) addExtra(d *Design, specie rune) bool {
	missing := d.Total
	for _, f := range d.Flowers {
		missing -= f.Quantity
	}
	if missing <= 0 {
		return false
	}

	quantity := a.stand.Quantity(specie, d.Size)
	if quantity <= 0 {
		return false
	}
	if quantity > missing {
		quantity = missing
	}

	d.AddExtra(quantity, specie)
	a.stand.take(specie, d.Size, quantity)
	return true
}

// unreserve returns every flower the design holds to the pool and clears
// its slots; extra slots are dropped entirely.
func (a *Assembler) unreserve(d *Design) {
	kept := make([]*Flower, 0, len(d.Flowers))
	for _, f := range d.Flowers {
		if f.Quantity > 0 {
			a.stand.put(f.Specie, d.Size, f.Quantity)
			f.Quantity = 0
		}
		if f.InDesign() {
			kept = append(kept, f)
		}
	}
	d.Flowers = kept
}
