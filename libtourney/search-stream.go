package libtourney

import (
	"time"

	"github.com/plan-systems/klog"

	"github.com/2x3systems/tourney/tourney"
)

// progressInterval is how many tournaments pass between progress log lines.
const progressInterval = 1000

// Search evaluates each tournament of store in database order and streams a Result for each.
// Skipped tournaments are only streamed when Opts.EmitSkipped is set.
func (s *Searcher) Search(store *Store) *tourney.ResultStream {
	stream := tourney.NewResultStream()

	go func() {
		defer stream.Close()

		start := time.Now()
		numQualifying := 0
		numSkipped := 0

		for i, T := range store.Tournaments {
			r := s.EvaluateTournament(T, i)
			s.Metrics.ObserveResult(r)

			if r.Skipped {
				numSkipped++
				if !s.Opts.EmitSkipped {
					continue
				}
			} else {
				s.Tally.Add(r)
				if r.Qualifies {
					numQualifying++
					klog.Infof("order %d tournament %d: %d triangles, s(Q) = %d exceeds %d",
						r.Order, r.Index, r.Triangles, r.Score, tourney.QualifyingScore(r.Order))
				}
			}

			if (i+1)%progressInterval == 0 {
				klog.V(2).Infof("searched %d of %d tournaments (%d skipped) in %v", i+1, store.Len(), numSkipped, time.Since(start))
			}

			stream.Outlet <- r
		}

		klog.V(1).Infof("search of order %d complete: %d tournaments, %d skipped, %d qualifying, %v",
			store.Order, store.Len(), numSkipped, numQualifying, time.Since(start))
	}()

	return stream
}
