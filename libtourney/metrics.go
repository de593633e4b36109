package libtourney

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/2x3systems/tourney/tourney"
)

// Metrics counts search activity on its own registry so that separate runs never share counters.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	tournaments *prometheus.CounterVec
	colorings   prometheus.Counter
	earlyExits  prometheus.Counter
	qualifying  prometheus.Counter
	minScore    prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		tournaments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourney_tournaments_total",
			Help: "Tournaments taken from the database, by outcome.",
		}, []string{"outcome"}),
		colorings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_colorings_scored_total",
			Help: "Colorings whose reachability count was computed.",
		}),
		earlyExits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_early_exits_total",
			Help: "Tournaments whose coloring search stopped at or below the result filter.",
		}),
		qualifying: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourney_qualifying_total",
			Help: "Tournaments whose minimum reachability count exceeds 2q(q-1)/3.",
		}),
		minScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tourney_min_score",
			Help:    "Minimum reachability count reported per evaluated tournament.",
			Buckets: prometheus.LinearBuckets(0, 6, 16),
		}),
	}
	m.Registry.MustRegister(m.tournaments, m.colorings, m.earlyExits, m.qualifying, m.minScore)
	return m
}

const (
	outcomeEvaluated = "evaluated"
	outcomeSkipped   = "skipped"
)

// ObserveResult records one Result emitted by the search.
func (m *Metrics) ObserveResult(r *tourney.Result) {
	if m == nil {
		return
	}
	if r.Skipped {
		m.tournaments.WithLabelValues(outcomeSkipped).Inc()
		return
	}
	m.tournaments.WithLabelValues(outcomeEvaluated).Inc()
	m.colorings.Add(float64(r.Colorings))
	m.minScore.Observe(float64(r.Score))
	if !r.Exact {
		m.earlyExits.Inc()
	}
	if r.Qualifies {
		m.qualifying.Inc()
	}
}

// WriteTextfile writes the current metric values in the node-exporter textfile format.
func (m *Metrics) WriteTextfile(pathname string) error {
	if m == nil || pathname == "" {
		return nil
	}
	err := prometheus.WriteToTextfile(pathname, m.Registry)
	if err != nil {
		return errors.Wrapf(err, "writing metrics to %s", pathname)
	}
	return nil
}
