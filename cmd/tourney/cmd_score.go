package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/2x3systems/tourney/libtourney"
	"github.com/2x3systems/tourney/tourney"
)

func runScore(cmd *cobra.Command, args []string) error {
	numColors, _ := cmd.Flags().GetInt("colors")
	render, _ := cmd.Flags().GetString("render")

	format, err := tourney.ParseRenderFormat(render)
	if err != nil {
		return err
	}

	T, err := libtourney.ParseTournament(args[0])
	if err != nil {
		return err
	}

	opts := libtourney.DefaultSearchOpts(T.Order())
	opts.NumColors = numColors
	opts.NoEarlyExit = true
	searcher, err := libtourney.NewSearcher(opts)
	if err != nil {
		return err
	}

	r := searcher.EvaluateTournament(T, 0)
	r.WriteAsString(os.Stdout, tourney.PrintOpts{
		Label:        T.String(),
		Matrix:       format,
		MatrixAlways: true,
	})
	return nil
}
