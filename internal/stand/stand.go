package stand

import "github.com/dekarrin/posy/internal/util"

// Stand is the pool of loose flowers available for assembly, counted per
// specie and size. Per-size intake totals are kept separately from the live
// pool; weighing uses the intake totals while reservation and release move
// flowers in and out of the live pool.
type Stand struct {
	pool   map[rune]map[Size]int
	totals map[Size]int
}

// NewStand creates an empty flower pool.
func NewStand() *Stand {
	return &Stand{
		pool: make(map[rune]map[Size]int),
		totals: map[Size]int{
			Large: 0,
			Small: 0,
		},
	}
}

// AddFlowers adds count flowers of the given specie and size to the pool and
// to the intake totals.
func (s *Stand) AddFlowers(specie rune, size Size, count int) {
	bySize, ok := s.pool[specie]
	if !ok {
		bySize = map[Size]int{Large: 0, Small: 0}
		s.pool[specie] = bySize
	}
	bySize[size] += count
	s.totals[size] += count
}

// Quantity returns how many flowers of the given specie and size are
// currently available.
func (s *Stand) Quantity(specie rune, size Size) int {
	bySize, ok := s.pool[specie]
	if !ok {
		return 0
	}
	return bySize[size]
}

// TotalFor returns the total number of flowers of the given size taken in,
// regardless of how many are currently reserved.
func (s *Stand) TotalFor(size Size) int {
	return s.totals[size]
}

// Species returns every specie the stand has ever held, in sorted order.
// Assembly iterates species through this so that results never depend on map
// iteration order.
func (s *Stand) Species() []rune {
	return util.OrderedKeys(s.pool)
}

func (s *Stand) take(specie rune, size Size, count int) {
	s.pool[specie][size] -= count
}

func (s *Stand) put(specie rune, size Size, count int) {
	bySize, ok := s.pool[specie]
	if !ok {
		bySize = map[Size]int{Large: 0, Small: 0}
		s.pool[specie] = bySize
	}
	bySize[size] += count
}
