package libtourney

import (
	"math"
	"math/bits"

	"github.com/2x3systems/tourney/tourney"
)

// Coloring assigns a color label in 1..C to each edge, indexed by tourney.EdgeIndex().
type Coloring []uint8

// NewColoring returns the coloring where every edge has color 1.
func NewColoring(numEdges int) Coloring {
	c := make(Coloring, numEdges)
	for e := range c {
		c[e] = 1
	}
	return c
}

// ColoredMatrix is a tournament combined with a coloring: entry (i,j) is Sign(i,j) * color({i,j}).
// For example, -2 at (i,j) means j beats i along an edge of color 2.
type ColoredMatrix struct {
	q int
	v []int8
}

// ApplyColoring combines the orientation of T with the edge colors of c.
// Neither T nor c is modified.
func ApplyColoring(T *Tournament, c Coloring) ColoredMatrix {
	q := T.Order()
	M := ColoredMatrix{
		q: q,
		v: make([]int8, q*q),
	}
	e := 0
	for i := 0; i < q; i++ {
		for j := i + 1; j < q; j++ {
			val := int8(T.Sign(i, j)) * int8(c[e])
			M.v[i*q+j] = val
			M.v[j*q+i] = -val
			e++
		}
	}
	return M
}

func (M ColoredMatrix) Order() int {
	return M.q
}

// At returns the signed color of the pair (i,j).
func (M ColoredMatrix) At(i, j int) int {
	return int(M.v[i*M.q+j])
}

// ColoringEnumerator generates every coloring of a tournament's edges as a mixed-radix counter.
//
// Edge 0 is held at color 1: permuting color labels maps any coloring to one where edge 0 has
// color 1 and the same reachability count, so nothing is lost. Each remaining edge is a digit
// cycling through 1..C, least significant digit first (edge 1), carrying into the next edge.
type ColoringEnumerator struct {
	numColors uint8
	cur       Coloring
	changed   []int
}

// NewColoringEnumerator returns an enumerator positioned at the all-1 coloring.
func NewColoringEnumerator(numEdges, numColors int) *ColoringEnumerator {
	if numColors < 1 || numColors > tourney.MaxNumColors {
		panic("numColors out of range")
	}
	return &ColoringEnumerator{
		numColors: uint8(numColors),
		cur:       NewColoring(numEdges),
		changed:   make([]int, 0, numEdges),
	}
}

// Coloring returns the current coloring. The caller must not modify or retain it across Advance().
func (en *ColoringEnumerator) Coloring() Coloring {
	return en.cur
}

// Changed returns the edges rewritten by the most recent Advance(), in ascending order.
func (en *ColoringEnumerator) Changed() []int {
	return en.changed
}

func (en *ColoringEnumerator) NumColors() int {
	return int(en.numColors)
}

// Advance steps to the next coloring and returns true.
// Once every coloring has been visited, it returns false and the enumerator is back at the all-1 coloring.
func (en *ColoringEnumerator) Advance() bool {
	en.changed = en.changed[:0]
	for e := 1; e < len(en.cur); e++ {
		en.changed = append(en.changed, e)
		if en.cur[e] < en.numColors {
			en.cur[e]++
			return true
		}
		en.cur[e] = 1
	}
	return false
}

// Reset returns the enumerator to the all-1 coloring.
func (en *ColoringEnumerator) Reset() {
	en.changed = en.changed[:0]
	for e := range en.cur {
		if en.cur[e] != 1 {
			en.cur[e] = 1
			en.changed = append(en.changed, e)
		}
	}
}

// Count returns C^(E-1), the number of colorings visited from the start until Advance() returns false.
// It saturates at math.MaxUint64.
func (en *ColoringEnumerator) Count() uint64 {
	count := uint64(1)
	for e := 1; e < len(en.cur); e++ {
		hi, lo := bits.Mul64(count, uint64(en.numColors))
		if hi != 0 {
			return math.MaxUint64
		}
		count = lo
	}
	return count
}
