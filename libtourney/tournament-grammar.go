package libtourney

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/2x3systems/tourney/tourney"
)

// TournamentExpr is a comma separated list of arc runs, e.g. "0>1>2>0, 3<0, 3<1, 3<2".
type TournamentExpr struct {
	Runs []*ArcRun `@@ ( "," @@ )*`
}

// ArcRun is a chain of arcs starting at StartVtx, e.g. "0>1<2" means 0 beats 1 and 2 beats 1.
type ArcRun struct {
	StartVtx int        `@Int`
	Arcs     []*ArcStep `@@+`
}

type ArcStep struct {
	Dir    string `@( ">" | "<" )`
	EndVtx int    `@Int`
}

var sTournamentLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Int", `[0-9]+`},
	{"Punct", `[,<>]`},
	{"Whitespace", `[ \t\r\n]+`},
})

var parseTournamentExpr = participle.MustBuild[TournamentExpr](
	participle.Lexer(sTournamentLexer),
	participle.Elide("Whitespace"),
)

// ParseTournament reads a tournament expression. The order is one more than the largest vertex named,
// and every pair of vertices must be oriented exactly once.
func ParseTournament(expr string) (*Tournament, error) {
	Texpr, err := parseTournamentExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrap(tourney.ErrBadExpr, err.Error())
	}

	maxVtx := -1
	for _, run := range Texpr.Runs {
		if run.StartVtx > maxVtx {
			maxVtx = run.StartVtx
		}
		for _, arc := range run.Arcs {
			if arc.EndVtx > maxVtx {
				maxVtx = arc.EndVtx
			}
		}
	}
	q := maxVtx + 1
	if q > tourney.MaxOrder {
		return nil, errors.Wrapf(tourney.ErrBadOrder, "vertex %d exceeds max order %d", maxVtx, tourney.MaxOrder)
	}

	T := NewTournament(q)
	oriented := make([]bool, T.NumEdges())

	for ri, run := range Texpr.Runs {
		onVtx := run.StartVtx
		for _, arc := range run.Arcs {
			nextVtx := arc.EndVtx
			if nextVtx == onVtx {
				return nil, errors.Wrapf(tourney.ErrBadExpr, "run #%d: vertex %d cannot beat itself", ri+1, onVtx)
			}
			e := tourney.EdgeIndex(q, onVtx, nextVtx)
			if oriented[e] {
				return nil, errors.Wrapf(tourney.ErrNotTournament, "run #%d: pair (%d,%d) oriented twice", ri+1, onVtx, nextVtx)
			}
			oriented[e] = true

			if arc.Dir == ">" {
				T.SetArc(onVtx, nextVtx)
			} else {
				T.SetArc(nextVtx, onVtx)
			}
			onVtx = nextVtx
		}
	}

	for i := 0; i < q; i++ {
		for j := i + 1; j < q; j++ {
			if !oriented[tourney.EdgeIndex(q, i, j)] {
				return nil, errors.Wrapf(tourney.ErrNotTournament, "pair (%d,%d) is not oriented", i, j)
			}
		}
	}

	return T, nil
}

// MustParseTournament is ParseTournament for expressions known to be valid.
func MustParseTournament(expr string) *Tournament {
	T, err := ParseTournament(expr)
	if err != nil {
		panic(err)
	}
	return T
}
