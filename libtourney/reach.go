package libtourney

import (
	"github.com/2x3systems/tourney/tourney"
)

// monoPath is a length-2 path x->y->z inside a directed triangle, where z beats x.
// It makes x reach z monochromatically when edges {x,y} and {y,z} share a color.
type monoPath struct {
	e1, e2 int32 // edge indices of {x,y} and {y,z}
	pair   int32 // x*q + z
}

// Evaluator computes s(Q,c), the number of ordered pairs (u,v) such that u reaches v by an arc or by a
// monochromatic path of length 2, for a fixed tournament Q and any coloring c.
//
// Score() recomputes from scratch.  Reset() and Recolor() maintain the count incrementally: each
// length-2 path that can matter is tracked, along with the number of monochromatic paths ("witnesses")
// for each pair it connects, so recoloring an edge only revisits the paths through that edge.
type Evaluator struct {
	T        *Tournament
	tris     []Triangle
	numArcs  int
	reach    []bool // scratch for Score()
	paths    []monoPath
	edgePath [][]int32 // edge index -> paths through that edge

	// incremental state
	colors    Coloring
	isMono    []bool  // per path
	witnesses []int32 // per ordered pair
	reached   int     // pairs with witnesses > 0
}

// NewEvaluator prepares an Evaluator for T, where tris must be FindTriangles(T).
func NewEvaluator(T *Tournament, tris []Triangle) *Evaluator {
	q := T.Order()
	numEdges := T.NumEdges()

	ev := &Evaluator{
		T:         T,
		tris:      tris,
		numArcs:   numEdges,
		reach:     make([]bool, q*q),
		paths:     make([]monoPath, 0, 3*len(tris)),
		edgePath:  make([][]int32, numEdges),
		colors:    NewColoring(numEdges),
		isMono:    make([]bool, 3*len(tris)),
		witnesses: make([]int32, q*q),
	}

	for _, tri := range tris {
		cycle := tri.cycle()
		for s := 0; s < 3; s++ {
			x, y, z := cycle[s], cycle[(s+1)%3], cycle[(s+2)%3]
			p := int32(len(ev.paths))
			path := monoPath{
				e1:   int32(tourney.EdgeIndex(q, x, y)),
				e2:   int32(tourney.EdgeIndex(q, y, z)),
				pair: int32(x*q + z),
			}
			ev.paths = append(ev.paths, path)
			ev.edgePath[path.e1] = append(ev.edgePath[path.e1], p)
			ev.edgePath[path.e2] = append(ev.edgePath[path.e2], p)
		}
	}

	ev.Reset(ev.colors)
	return ev
}

// cycle returns the triangle's vertices in arc order.
func (tri Triangle) cycle() [3]int {
	if tri.Clockwise {
		return [3]int{tri.I, tri.J, tri.K}
	}
	return [3]int{tri.I, tri.K, tri.J}
}

// Score returns s(Q,c) for the coloring held by M, recomputing the reachability matrix from scratch.
func (ev *Evaluator) Score(M ColoredMatrix) int {
	q := M.Order()
	reach := ev.reach

	// A single arc is trivially monochromatic.
	for i := 0; i < q; i++ {
		for j := 0; j < q; j++ {
			reach[i*q+j] = M.At(i, j) > 0
		}
	}

	for _, tri := range ev.tris {
		cycle := tri.cycle()
		for s := 0; s < 3; s++ {
			x, y, z := cycle[s], cycle[(s+1)%3], cycle[(s+2)%3]
			if M.At(x, y) == M.At(y, z) {
				reach[x*q+z] = true
			}
		}
	}

	count := 0
	for _, r := range reach {
		if r {
			count++
		}
	}
	return count
}

// ScoreColoring returns Score(ApplyColoring(ev.T, c)).
func (ev *Evaluator) ScoreColoring(c Coloring) int {
	return ev.Score(ApplyColoring(ev.T, c))
}

// Reset loads coloring c into the incremental state and returns s(Q,c).
func (ev *Evaluator) Reset(c Coloring) int {
	copy(ev.colors, c)
	for k := range ev.witnesses {
		ev.witnesses[k] = 0
	}
	ev.reached = 0

	for p, path := range ev.paths {
		mono := ev.colors[path.e1] == ev.colors[path.e2]
		ev.isMono[p] = mono
		if mono {
			ev.addWitness(path.pair)
		}
	}
	return ev.Current()
}

// Recolor sets the color of edge e and updates s(Q,c) by revisiting only the paths through e.
func (ev *Evaluator) Recolor(e int, color uint8) {
	if ev.colors[e] == color {
		return
	}
	ev.colors[e] = color

	for _, p := range ev.edgePath[e] {
		path := &ev.paths[p]
		mono := ev.colors[path.e1] == ev.colors[path.e2]
		if mono == ev.isMono[p] {
			continue
		}
		ev.isMono[p] = mono
		if mono {
			ev.addWitness(path.pair)
		} else {
			ev.dropWitness(path.pair)
		}
	}
}

// Current returns s(Q,c) for the coloring most recently loaded by Reset() and Recolor().
func (ev *Evaluator) Current() int {
	return ev.numArcs + ev.reached
}

func (ev *Evaluator) addWitness(pair int32) {
	ev.witnesses[pair]++
	if ev.witnesses[pair] == 1 {
		ev.reached++
	}
}

func (ev *Evaluator) dropWitness(pair int32) {
	ev.witnesses[pair]--
	if ev.witnesses[pair] == 0 {
		ev.reached--
	}
}
