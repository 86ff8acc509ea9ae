// Package stand implements the flower-stand domain: bouquet designs, the
// available flower pool, and the assembly algorithm that fills designs from
// the pool. Intake text is parsed through the syntax package so that every
// malformed line is reported with its exact position.
package stand

import (
	"fmt"
	"sort"
	"strings"
)

// Size is the size class of a flower or bouquet. The set of sizes is closed.
type Size rune

const (
	Large Size = 'L'
	Small Size = 'S'
)

// ParseSize returns the Size for the given rune, and whether the rune is a
// valid size letter at all.
func ParseSize(r rune) (Size, bool) {
	switch Size(r) {
	case Large:
		return Large, true
	case Small:
		return Small, true
	default:
		return 0, false
	}
}

func (s Size) String() string {
	return string(rune(s))
}

// Flower is one specie slot within a bouquet design. DesignQuantity is how
// many of the specie the design calls for; Quantity is how many are actually
// reserved in the bouquet right now. A slot with DesignQuantity 0 holds extra
// flowers added only to reach the bouquet's total.
type Flower struct {
	Specie         rune
	DesignQuantity int
	Quantity       int

	// scarcity weight, set during weighing
	weight float64
}

// InDesign returns whether the slot is part of the bouquet's design proper,
// as opposed to holding extras.
func (f *Flower) InDesign() bool {
	return f.DesignQuantity > 0
}

// Required returns how many more flowers the slot needs before the design
// demand for its specie is met.
func (f *Flower) Required() int {
	req := f.DesignQuantity - f.Quantity
	if req < 0 {
		return 0
	}
	return req
}

func (f *Flower) String() string {
	return fmt.Sprintf("%d%s", f.Quantity, string(f.Specie))
}

// Design is a bouquet design along with the flowers currently reserved for
// it. A design is parsed from a line such as "AL10a15b5c30" or its grouped
// equivalent "AL(10a, 15b, 5c)30": name A, size L, 10 of specie a, 15 of b,
// 5 of c, 30 flowers in total.
type Design struct {
	// Name is the single uppercase letter naming the design.
	Name rune

	// Size is the bouquet size; every flower in the bouquet must match it.
	Size Size

	// Flowers is the specie slots of the bouquet, design slots first in
	// design order, extra slots appended during assembly.
	Flowers []*Flower

	// Total is the exact number of flowers the finished bouquet must hold.
	Total int

	// deactivated designs are skipped by assembly; a design is deactivated
	// once it is known it can never be completed with the available pool
	active bool

	// assembly priority, set during weighing
	weight float64

	source string
}

// Source returns the original intake line the design was parsed from.
func (d *Design) Source() string {
	return d.source
}

// Completed returns whether the bouquet has every design flower it calls for
// and exactly Total flowers overall.
func (d *Design) Completed() bool {
	if !d.DesignCompleted() {
		return false
	}

	sum := 0
	for _, f := range d.Flowers {
		sum += f.Quantity
	}
	return sum == d.Total
}

// DesignCompleted returns whether every design slot has at least its design
// quantity reserved.
func (d *Design) DesignCompleted() bool {
	for _, f := range d.Flowers {
		if f.DesignQuantity > f.Quantity {
			return false
		}
	}
	return true
}

// ExtraQuantity returns how many flowers beyond the design demands are needed
// to reach the bouquet total.
func (d *Design) ExtraQuantity() int {
	sum := 0
	for _, f := range d.Flowers {
		sum += f.DesignQuantity
	}
	return d.Total - sum
}

// AddExtra reserves quantity extra flowers of the given specie in the
// bouquet, reusing the specie's slot if one exists.
func (d *Design) AddExtra(quantity int, specie rune) {
	for _, f := range d.Flowers {
		if f.Specie == specie {
			f.Quantity += quantity
			return
		}
	}
	d.Flowers = append(d.Flowers, &Flower{Specie: specie, Quantity: quantity})
}

// String returns the canonical form of the bouquet: name, size, then each
// non-empty slot as quantity and specie, sorted by specie.
func (d *Design) String() string {
	var sb strings.Builder

	sb.WriteRune(d.Name)
	sb.WriteString(d.Size.String())

	sorted := make([]*Flower, 0, len(d.Flowers))
	for _, f := range d.Flowers {
		if f.Quantity > 0 {
			sorted = append(sorted, f)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Specie < sorted[j].Specie
	})

	for _, f := range sorted {
		sb.WriteString(f.String())
	}

	return sb.String()
}
