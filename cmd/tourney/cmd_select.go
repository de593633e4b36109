package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2x3systems/tourney/libtourney/catalog"
	"github.com/2x3systems/tourney/tourney"
)

func runSelect(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()
	order, _ := fs.GetInt("order")
	minScore, _ := fs.GetInt("min")
	maxScore, _ := fs.GetInt("max")
	render, _ := fs.GetString("render")

	sel := tourney.DefaultResultSelector(order)
	sel.MinScore = minScore
	if maxScore >= 0 {
		sel.MaxScore = maxScore
	}
	sel.QualifyingOnly, _ = fs.GetBool("qualifying")
	sel.ExactOnly, _ = fs.GetBool("exact")
	sel.IncludeSkipped, _ = fs.GetBool("skipped")

	format, err := tourney.ParseRenderFormat(render)
	if err != nil {
		return err
	}

	ctx := tourney.NewCatalogContext()
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	cat, err := catalog.OpenCatalog(ctx, tourney.CatalogOpts{
		DbPathName: args[0],
		ReadOnly:   true,
	})
	if err != nil {
		return err
	}
	defer cat.Close()

	state := cat.State()
	fmt.Printf("catalog %s: %d results of order %d (last run %s)\n", args[0], cat.NumResults(order), order, state.LastRunID)

	n := tourney.SelectFromCatalog(cat, sel).Print(os.Stdout, tourney.PrintOpts{
		Label:          fmt.Sprintf("q%d", order),
		Matrix:         format,
		IncludeSkipped: sel.IncludeSkipped,
	}).PullAll()

	fmt.Printf("%d selected\n", n)
	return nil
}
