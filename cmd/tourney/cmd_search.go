package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"

	"github.com/2x3systems/tourney/libtourney"
	"github.com/2x3systems/tourney/libtourney/catalog"
	"github.com/2x3systems/tourney/tourney"
)

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := LoadRunConfig(configPathname)
	if err != nil {
		return err
	}
	if err = cfg.ApplyFlags(cmd); err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	qualifyingOnly, _ := cmd.Flags().GetBool("qualifying")
	out := cmd.OutOrStdout()

	opts := cfg.SearchOpts()
	searcher, err := libtourney.NewSearcher(opts)
	if err != nil {
		return err
	}
	searcher.Metrics = libtourney.NewMetrics()

	store, err := libtourney.OpenStore(cfg.DatabasePathname(), cfg.Order)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	klog.Infof("run %s: order %d, %d tournaments, %d colors, triangle filter %d, result filter %d, early exit %v",
		runID, cfg.Order, store.Len(), opts.NumColors, opts.TriangleFilter, opts.ResultFilter, !opts.NoEarlyExit)

	ctx := tourney.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	var cat tourney.Catalog
	if cfg.Catalog != "" {
		cat, err = catalog.OpenCatalog(ctx, tourney.CatalogOpts{
			DbPathName: cfg.Catalog,
			RunID:      runID,
		})
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	stream := searcher.Search(store)

	if cat != nil {
		// Every result goes to the catalog, not only those printed.
		stream = stream.Tap(func(r *tourney.Result) {
			cat.TryAddResult(r)
		})
	}

	if qualifyingOnly {
		sel := tourney.DefaultResultSelector(cfg.Order)
		sel.QualifyingOnly = true
		stream = stream.Select(sel)
	}

	start := time.Now()
	numPrinted := stream.Print(out, tourney.PrintOpts{
		Label:          fmt.Sprintf("q%d", cfg.Order),
		Matrix:         cfg.RenderFormat(),
		IncludeSkipped: cfg.EmitSkipped,
	}).PullAll()

	fmt.Fprintf(out, "\n%d tournaments of order %d searched in %v, %d printed\n", store.Len(), cfg.Order, time.Since(start).Round(time.Millisecond), numPrinted)
	if searcher.Tally.Total() > 0 {
		searcher.Tally.WriteTo(out)
	}

	return searcher.Metrics.WriteTextfile(cfg.MetricsFile)
}
