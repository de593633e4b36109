package libtourney_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/tourney/libtourney"
)

func testTournaments(t *testing.T) []*libtourney.Tournament {
	tournaments := []*libtourney.Tournament{
		libtourney.MustParseTournament("0>1>2>0"),
		libtourney.MustParseTournament("0>1>2, 0>2"),
	}
	for _, expr := range order4 {
		tournaments = append(tournaments, libtourney.MustParseTournament(expr))
	}
	R5, err := libtourney.Rotational(5)
	require.NoError(t, err)
	tournaments = append(tournaments, R5)

	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 4; i++ {
		tournaments = append(tournaments, randomTournament(rng, 5))
	}
	return tournaments
}

func TestEvaluator_ScoreMatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for q := 3; q <= 8; q++ {
		for trial := 0; trial < 20; trial++ {
			T := randomTournament(rng, q)
			ev := libtourney.NewEvaluator(T, libtourney.FindTriangles(T))
			for numColors := 1; numColors <= 3; numColors++ {
				c := randomColoring(rng, T.NumEdges(), numColors)
				require.Equal(t, naiveScore(T, c), ev.ScoreColoring(c), "q=%d %v coloring %v", q, T, c)
			}
		}
	}
}

func TestEvaluator_IncrementalFollowsEnumerator(t *testing.T) {
	for _, T := range testTournaments(t) {
		for numColors := 2; numColors <= 3; numColors++ {
			ev := libtourney.NewEvaluator(T, libtourney.FindTriangles(T))
			en := libtourney.NewColoringEnumerator(T.NumEdges(), numColors)

			require.Equal(t, ev.ScoreColoring(en.Coloring()), ev.Reset(en.Coloring()))
			for en.Advance() {
				c := en.Coloring()
				for _, e := range en.Changed() {
					ev.Recolor(e, c[e])
				}
				require.Equal(t, naiveScore(T, c), ev.Current(), "%v coloring %v", T, c)
			}
		}
	}
}

func TestEvaluator_IncrementalRandomRecolor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	T := randomTournament(rng, 9)
	ev := libtourney.NewEvaluator(T, libtourney.FindTriangles(T))

	numEdges := T.NumEdges()
	c := randomColoring(rng, numEdges, 3)
	require.Equal(t, naiveScore(T, c), ev.Reset(c))

	for step := 0; step < 500; step++ {
		e := rng.Intn(numEdges)
		c[e] = uint8(1 + rng.Intn(3))
		ev.Recolor(e, c[e])
		require.Equal(t, ev.ScoreColoring(c), ev.Current(), "step %d", step)
	}
}

func TestEvaluator_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		q := 3 + rng.Intn(8)
		T := randomTournament(rng, q)
		ev := libtourney.NewEvaluator(T, libtourney.FindTriangles(T))
		score := ev.ScoreColoring(randomColoring(rng, T.NumEdges(), 2))
		assert.GreaterOrEqual(t, score, q*(q-1)/2)
		assert.LessOrEqual(t, score, q*(q-1))
	}
}

func TestEvaluator_TransitiveIsArcsOnly(t *testing.T) {
	T := libtourney.Transitive(4)
	tris := libtourney.FindTriangles(T)
	require.Empty(t, tris)

	ev := libtourney.NewEvaluator(T, tris)
	en := libtourney.NewColoringEnumerator(T.NumEdges(), 2)
	for {
		assert.Equal(t, 6, ev.ScoreColoring(en.Coloring()))
		if !en.Advance() {
			break
		}
	}
}

func TestEvaluator_ColorSwapInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 50; trial++ {
		T := randomTournament(rng, 7)
		ev := libtourney.NewEvaluator(T, libtourney.FindTriangles(T))

		c := randomColoring(rng, T.NumEdges(), 2)
		swapped := make(libtourney.Coloring, len(c))
		for e := range c {
			swapped[e] = 3 - c[e]
		}
		assert.Equal(t, ev.ScoreColoring(c), ev.ScoreColoring(swapped))
	}
}

func TestEvaluator_TransposeInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 50; trial++ {
		T := randomTournament(rng, 6)
		Tt := T.Transpose()
		c := randomColoring(rng, T.NumEdges(), 3)

		ev := libtourney.NewEvaluator(T, libtourney.FindTriangles(T))
		evt := libtourney.NewEvaluator(Tt, libtourney.FindTriangles(Tt))
		assert.Equal(t, ev.ScoreColoring(c), evt.ScoreColoring(c))
	}
}

func TestEvaluator_ThreeCycle(t *testing.T) {
	T := libtourney.MustParseTournament("0>1>2>0")
	ev := libtourney.NewEvaluator(T, libtourney.FindTriangles(T))

	assert.Equal(t, 6, ev.ScoreColoring(libtourney.Coloring{1, 1, 1}))
	assert.Equal(t, 4, ev.ScoreColoring(libtourney.Coloring{1, 2, 1}))
	assert.Equal(t, 4, ev.ScoreColoring(libtourney.Coloring{1, 1, 2}))
	assert.Equal(t, 3, ev.ScoreColoring(libtourney.Coloring{1, 2, 3}))
}
