package stand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustDesign(t *testing.T, line string) *Design {
	t.Helper()
	d, err := ParseDesign(line)
	if err != nil {
		t.Fatalf("ParseDesign(%q): %v", line, err)
	}
	return d
}

func mustFlowers(t *testing.T, lines ...string) []FlowerLot {
	t.Helper()
	var lots []FlowerLot
	for _, line := range lines {
		lot, err := ParseFlower(line)
		if err != nil {
			t.Fatalf("ParseFlower(%q): %v", line, err)
		}
		lots = append(lots, lot)
	}
	return lots
}

func assemble(intake Intake) *Assembler {
	a := NewAssembler(intake)
	a.Weigh()
	a.Sort()
	a.Assemble()
	return a
}

func Test_Assemble_fillsWithExtras(t *testing.T) {
	assert := assert.New(t)

	a := assemble(Intake{
		Designs: []*Design{mustDesign(t, "AL2a3")},
		Flowers: mustFlowers(t, "2aL", "bL"),
	})

	done := a.Completed()
	if !assert.Len(done, 1) {
		return
	}
	assert.Equal("AL2a1b", done[0].String())
}

func Test_Assemble_poolTooSmall(t *testing.T) {
	assert := assert.New(t)

	a := assemble(Intake{
		Designs: []*Design{mustDesign(t, "AL5a5")},
		Flowers: mustFlowers(t, "3aL"),
	})

	assert.Empty(a.Completed())
}

func Test_Assemble_sizeNeverMixes(t *testing.T) {
	assert := assert.New(t)

	// plenty of small flowers, but the design is large
	a := assemble(Intake{
		Designs: []*Design{mustDesign(t, "AL2a2")},
		Flowers: mustFlowers(t, "5aS"),
	})

	assert.Empty(a.Completed())
}

func Test_Assemble_heavierDesignWins(t *testing.T) {
	assert := assert.New(t)

	// both designs want specie a, but only one can have its full demand; the
	// bigger and rarer demand gets priority
	a := assemble(Intake{
		Designs: []*Design{
			mustDesign(t, "BL2a2"),
			mustDesign(t, "AL3a3"),
		},
		Flowers: mustFlowers(t, "4aL"),
	})

	done := a.Completed()
	if !assert.Len(done, 1) {
		return
	}
	assert.Equal("AL3a", done[0].String())
}

func Test_Assemble_abandonedDesignFreesFlowers(t *testing.T) {
	assert := assert.New(t)

	// the heavy design reserves nearly everything but cannot reach its
	// total; giving up on it frees flowers for the light design
	a := assemble(Intake{
		Designs: []*Design{
			mustDesign(t, "AL2a9"),
			mustDesign(t, "BL1a1"),
		},
		Flowers: mustFlowers(t, "5aL", "4bL"),
	})

	done := a.Completed()
	if !assert.Len(done, 1) {
		return
	}
	assert.Equal("BL1a", done[0].String())
}

func Test_Assemble_extrasNeverOverfill(t *testing.T) {
	assert := assert.New(t)

	// extras come from two species; the second must only top the bouquet up
	// to its exact total
	a := assemble(Intake{
		Designs: []*Design{mustDesign(t, "AL1a5")},
		Flowers: mustFlowers(t, "3aL", "9bL"),
	})

	done := a.Completed()
	if !assert.Len(done, 1) {
		return
	}

	sum := 0
	for _, f := range done[0].Flowers {
		sum += f.Quantity
	}
	assert.Equal(5, sum)
	assert.Equal("AL3a2b", done[0].String())
}

func Test_Assemble_deterministic(t *testing.T) {
	assert := assert.New(t)

	build := func() []string {
		a := assemble(Intake{
			Designs: []*Design{
				mustDesign(t, "AL10a15b5c30"),
				mustDesign(t, "AS10a10b25"),
				mustDesign(t, "BL15b1c21"),
				mustDesign(t, "BS10b5c16"),
				mustDesign(t, "CL20a15c45"),
				mustDesign(t, "DL20b28"),
			},
			Flowers: mustFlowers(t,
				"10aL", "10bL", "10cL", "10aS", "10bS", "10cS",
			),
		})

		var out []string
		for _, d := range a.Completed() {
			out = append(out, d.String())
		}
		return out
	}

	first := build()
	second := build()
	assert.Equal(first, second)

	// every completed bouquet holds exactly its total, single-sized
	a := assemble(Intake{
		Designs: []*Design{
			mustDesign(t, "AS10a10b25"),
			mustDesign(t, "BS10b5c16"),
		},
		Flowers: mustFlowers(t, "10aS", "10bS", "10cS"),
	})
	for _, d := range a.Completed() {
		sum := 0
		for _, f := range d.Flowers {
			sum += f.Quantity
		}
		assert.Equal(d.Total, sum, "design %s", d.Source())
	}
}

func Test_Weigh_deactivatesImpossibleDesigns(t *testing.T) {
	assert := assert.New(t)

	a := NewAssembler(Intake{
		Designs: []*Design{
			mustDesign(t, "AL2a2"), // fine
			mustDesign(t, "BL9b9"), // total exceeds large pool
			mustDesign(t, "CL3c3"), // specie c not in pool at all
		},
		Flowers: mustFlowers(t, "4aL", "2bL"),
	})
	a.Weigh()

	assert.True(a.designs[0].active)
	assert.False(a.designs[1].active)
	assert.False(a.designs[2].active)
}
