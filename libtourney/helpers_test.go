package libtourney_test

import (
	"math/rand"

	"github.com/2x3systems/tourney/libtourney"
	"github.com/2x3systems/tourney/tourney"
)

// Tournaments of order 4, one per isomorphism class.
var order4 = []string{
	"0>1, 0>2, 0>3, 1>2, 1>3, 2>3", // transitive
	"0>1>2>0, 3<0, 3<1, 3<2",       // 3-cycle plus a sink
	"0>1>2>0, 3>0, 3>1, 3>2",       // 3-cycle plus a source
	"0>1>2>3>0, 0>2, 1>3",          // strong, 2 triangles
}

func randomTournament(rng *rand.Rand, q int) *libtourney.Tournament {
	T := libtourney.NewTournament(q)
	for i := 0; i < q; i++ {
		for j := i + 1; j < q; j++ {
			if rng.Intn(2) == 0 {
				T.SetArc(j, i)
			}
		}
	}
	return T
}

func randomColoring(rng *rand.Rand, numEdges, numColors int) libtourney.Coloring {
	c := make(libtourney.Coloring, numEdges)
	for e := range c {
		c[e] = uint8(1 + rng.Intn(numColors))
	}
	return c
}

// naiveScore counts reachable pairs straight from the definition, with no triangle index.
func naiveScore(T *libtourney.Tournament, c libtourney.Coloring) int {
	q := T.Order()
	color := func(i, j int) uint8 {
		return c[tourney.EdgeIndex(q, i, j)]
	}

	count := 0
	for u := 0; u < q; u++ {
		for v := 0; v < q; v++ {
			if u == v {
				continue
			}
			if T.Beats(u, v) {
				count++
				continue
			}
			for m := 0; m < q; m++ {
				if m != u && m != v && T.Beats(u, m) && T.Beats(m, v) && color(u, m) == color(m, v) {
					count++
					break
				}
			}
		}
	}
	return count
}

// naiveMin minimizes naiveScore over every coloring, including those where edge 0 is not color 1.
func naiveMin(T *libtourney.Tournament, numColors int) int {
	numEdges := T.NumEdges()
	c := libtourney.NewColoring(numEdges)
	best := naiveScore(T, c)
	for {
		e := 0
		for ; e < numEdges; e++ {
			if int(c[e]) < numColors {
				c[e]++
				break
			}
			c[e] = 1
		}
		if e == numEdges {
			return best
		}
		if score := naiveScore(T, c); score < best {
			best = score
		}
	}
}
