package main

import (
	"github.com/spf13/cobra"
)

var (
	configPathname string

	rootCmd = &cobra.Command{
		Use:   "tourney",
		Short: "Searches tournament databases for high monochromatic reachability",
		Long: `tourney enumerates every edge coloring of each tournament in a database and
reports s(Q), the fewest ordered pairs reachable by a monochromatic path of length
at most 2, looking for tournaments where s(Q) exceeds 2q(q-1)/3.`,
		SilenceUsage: true,
	}

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Search a tournament database",
		Args:  cobra.NoArgs,
		RunE:  runSearch, // cmd_search.go
	}

	scoreCmd = &cobra.Command{
		Use:     "score [tournament expression]",
		Short:   "Compute s(Q) for one tournament, e.g. \"0>1>2>0, 3>0, 3>1, 3>2\"",
		Example: `  tourney score "0>1>2>0" --colors 2`,
		Args:    cobra.ExactArgs(1),
		RunE:    runScore, // cmd_score.go
	}

	selectCmd = &cobra.Command{
		Use:   "select [catalog directory]",
		Short: "Print results stored in a result catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runSelect, // cmd_select.go
	}

	pyCmd = &cobra.Command{
		Use:   "py [script.py]",
		Short: "Run a gpython script (or a REPL) with the _pytourney module loaded",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPython, // gpython-run.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPathname, "config", "", "YAML run config")

	addRunFlags(searchCmd)
	searchCmd.Flags().Bool("qualifying", false, "only print tournaments exceeding 2q(q-1)/3")

	scoreCmd.Flags().IntP("colors", "c", 2, "number of edge colors")
	scoreCmd.Flags().String("render", "ascii", "matrix format: latex, ascii, or none")

	selectCmd.Flags().IntP("order", "q", 9, "tournament order to select")
	selectCmd.Flags().Int("min", 0, "lowest score to select")
	selectCmd.Flags().Int("max", -1, "highest score to select (-1 for no limit)")
	selectCmd.Flags().Bool("qualifying", false, "only select tournaments exceeding 2q(q-1)/3")
	selectCmd.Flags().Bool("exact", false, "only select results where every coloring was scored")
	selectCmd.Flags().Bool("skipped", false, "also select tournaments excluded by the triangle filter")
	selectCmd.Flags().String("render", "latex", "matrix format: latex, ascii, or none")

	rootCmd.AddCommand(searchCmd, scoreCmd, selectCmd, pyCmd)
}
