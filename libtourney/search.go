package libtourney

import (
	"fmt"

	"github.com/2x3systems/tourney/tourney"
)

// SearchOpts specifies how each tournament of a Store is searched.
type SearchOpts struct {
	NumColors      int  // number of edge colors C
	TriangleFilter int  // tournaments with fewer directed triangles are skipped
	ResultFilter   int  // a coloring scoring at or below this ends the search of a tournament
	NoEarlyExit    bool // if set, every coloring is scored and each Score is exact
	EmitSkipped    bool // if set, tournaments excluded by TriangleFilter are emitted with Skipped set
}

// DefaultSearchOpts returns the options that search for tournaments of order q exceeding 2q(q-1)/3.
func DefaultSearchOpts(q int) SearchOpts {
	return SearchOpts{
		NumColors:      tourney.DefaultNumColors,
		TriangleFilter: 0,
		ResultFilter:   tourney.QualifyingScore(q),
	}
}

// Validate checks opts can drive a search.
func (opts *SearchOpts) Validate() error {
	if opts.NumColors < 1 || opts.NumColors > tourney.MaxNumColors {
		return &tourney.ConfigurationError{
			Param:  "colors",
			Reason: fmt.Sprintf("must be in 1..%d, got %d", tourney.MaxNumColors, opts.NumColors),
		}
	}
	if opts.TriangleFilter < 0 {
		return &tourney.ConfigurationError{
			Param:  "triangle_filter",
			Reason: fmt.Sprintf("must not be negative, got %d", opts.TriangleFilter),
		}
	}
	if opts.ResultFilter < 0 {
		return &tourney.ConfigurationError{
			Param:  "result_filter",
			Reason: fmt.Sprintf("must not be negative, got %d", opts.ResultFilter),
		}
	}
	return nil
}

// Evaluation is the outcome of searching the colorings of one tournament.
type Evaluation struct {
	Score     int    // lowest score seen
	Exact     bool   // if set, every coloring was scored and Score is s(Q)
	Colorings uint64 // colorings scored
}

// Searcher minimizes the reachability count over all colorings of each tournament it is given.
// A Searcher is not safe for concurrent use.
type Searcher struct {
	Opts    SearchOpts
	Metrics *Metrics // optional
	Tally   *ScoreTally
}

func NewSearcher(opts SearchOpts) (*Searcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Searcher{
		Opts:  opts,
		Tally: NewScoreTally(),
	}, nil
}

// Evaluate scores the colorings of T in enumeration order, starting with the all-1 coloring.
//
// Unless NoEarlyExit is set, the search stops at the first coloring scoring at or below ResultFilter.
// The returned Score is then only an upper bound on s(Q), known to be at or below the filter,
// and Exact is false.
func (s *Searcher) Evaluate(T *Tournament, tris []Triangle) Evaluation {
	numEdges := T.NumEdges()
	ev := NewEvaluator(T, tris)
	en := NewColoringEnumerator(numEdges, s.Opts.NumColors)

	best := ev.Reset(en.Coloring())
	eval := Evaluation{
		Score:     best,
		Exact:     true,
		Colorings: 1,
	}
	earlyExit := !s.Opts.NoEarlyExit

	if earlyExit && best <= s.Opts.ResultFilter {
		eval.Exact = en.Count() == 1
		return eval
	}

	for en.Advance() {
		c := en.Coloring()
		for _, e := range en.Changed() {
			ev.Recolor(e, c[e])
		}
		eval.Colorings++

		score := ev.Current()
		if score < eval.Score {
			eval.Score = score
		}
		if earlyExit && score <= s.Opts.ResultFilter {
			eval.Exact = eval.Colorings == en.Count()
			break
		}
	}

	return eval
}

// EvaluateTournament searches T and forms the Result reported for database entry index.
// A tournament with fewer than TriangleFilter directed triangles is not evaluated and returns with Skipped set.
func (s *Searcher) EvaluateTournament(T *Tournament, index int) *tourney.Result {
	q := T.Order()

	r := &tourney.Result{
		Order:     q,
		Index:     index,
		Triangles: CountTriangles(T),
		Arcs:      T.AppendArcs(make([]byte, 0, T.NumEdges())),
	}

	if r.Triangles < s.Opts.TriangleFilter {
		r.Skipped = true
		return r
	}

	eval := s.Evaluate(T, FindTriangles(T))
	r.Score = eval.Score
	r.Exact = eval.Exact
	r.Colorings = eval.Colorings
	r.Qualifies = eval.Exact && eval.Score > tourney.QualifyingScore(q)
	return r
}
