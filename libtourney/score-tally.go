package libtourney

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"

	"github.com/2x3systems/tourney/tourney"
)

// ScoreCount is the number of evaluated tournaments that reported a given minimum score.
type ScoreCount struct {
	Score   int
	Exact   int // tournaments where Score is s(Q)
	Inexact int // tournaments where the search stopped early at Score
}

// ScoreTally is an ordered histogram of the scores reported by a search.
type ScoreTally struct {
	tree  *redblacktree.Tree
	total int
}

func NewScoreTally() *ScoreTally {
	return &ScoreTally{
		tree: redblacktree.NewWith(utils.IntComparator),
	}
}

// Add records r.  Skipped results are ignored.
func (tally *ScoreTally) Add(r *tourney.Result) {
	if r.Skipped {
		return
	}
	var count *ScoreCount
	if val, found := tally.tree.Get(r.Score); found {
		count = val.(*ScoreCount)
	} else {
		count = &ScoreCount{Score: r.Score}
		tally.tree.Put(r.Score, count)
	}
	if r.Exact {
		count.Exact++
	} else {
		count.Inexact++
	}
	tally.total++
}

// Total returns the number of results added.
func (tally *ScoreTally) Total() int {
	return tally.total
}

// Min returns the lowest score added, or false if the tally is empty.
func (tally *ScoreTally) Min() (int, bool) {
	node := tally.tree.Left()
	if node == nil {
		return 0, false
	}
	return node.Key.(int), true
}

// Max returns the highest score added, or false if the tally is empty.
func (tally *ScoreTally) Max() (int, bool) {
	node := tally.tree.Right()
	if node == nil {
		return 0, false
	}
	return node.Key.(int), true
}

// Each calls fn for each distinct score in ascending order.
func (tally *ScoreTally) Each(fn func(count ScoreCount)) {
	itr := tally.tree.Iterator()
	for itr.Next() {
		fn(*itr.Value().(*ScoreCount))
	}
}

// WriteTo writes one line per distinct score, e.g. "score  34:     12 exact,      3 early exit".
func (tally *ScoreTally) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var err error
	tally.Each(func(count ScoreCount) {
		if err != nil {
			return
		}
		var n int
		n, err = fmt.Fprintf(w, "score %3d: %6d exact, %6d early exit\n", count.Score, count.Exact, count.Inexact)
		total += int64(n)
	})
	return total, err
}
