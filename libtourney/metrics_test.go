package libtourney

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/tourney/tourney"
)

func TestMetrics_ObserveResult(t *testing.T) {
	m := NewMetrics()

	m.ObserveResult(&tourney.Result{Order: 5, Skipped: true})
	m.ObserveResult(&tourney.Result{Order: 5, Score: 12, Exact: true, Colorings: 512})
	m.ObserveResult(&tourney.Result{Order: 5, Score: 14, Exact: false, Colorings: 3})
	m.ObserveResult(&tourney.Result{Order: 5, Score: 16, Exact: true, Qualifies: true, Colorings: 512})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.tournaments.WithLabelValues(outcomeSkipped)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.tournaments.WithLabelValues(outcomeEvaluated)))
	assert.Equal(t, 1027.0, testutil.ToFloat64(m.colorings))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.earlyExits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.qualifying))

	pathname := filepath.Join(t.TempDir(), "tourney.prom")
	require.NoError(t, m.WriteTextfile(pathname))
	buf, err := os.ReadFile(pathname)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(buf), "tourney_min_score_count 3"))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.ObserveResult(&tourney.Result{Score: 3})
	assert.NoError(t, m.WriteTextfile("/nonexistent/metrics.prom"))
}

func TestScoreTally(t *testing.T) {
	tally := NewScoreTally()
	_, ok := tally.Min()
	assert.False(t, ok)

	for _, r := range []*tourney.Result{
		{Score: 40, Exact: true},
		{Score: 34, Exact: false},
		{Score: 40, Exact: true},
		{Score: 52, Exact: true},
		{Skipped: true},
	} {
		tally.Add(r)
	}

	assert.Equal(t, 4, tally.Total())
	min, _ := tally.Min()
	max, _ := tally.Max()
	assert.Equal(t, 34, min)
	assert.Equal(t, 52, max)

	var scores []int
	tally.Each(func(count ScoreCount) {
		scores = append(scores, count.Score)
		if count.Score == 40 {
			assert.Equal(t, 2, count.Exact)
		}
	})
	assert.Equal(t, []int{34, 40, 52}, scores)

	out := strings.Builder{}
	_, err := tally.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t,
		"score  34:      0 exact,      1 early exit\n"+
			"score  40:      2 exact,      0 early exit\n"+
			"score  52:      1 exact,      0 early exit\n",
		out.String())
}
