package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/tourney/libtourney/catalog"
	"github.com/2x3systems/tourney/tourney"
)

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()
	require.NoError(t, cfg.Validate())

	opts := cfg.SearchOpts()
	assert.Equal(t, 2, opts.NumColors)
	assert.Equal(t, 30, opts.TriangleFilter)
	assert.Equal(t, 48, opts.ResultFilter)
	assert.False(t, opts.NoEarlyExit)
	assert.Equal(t, "tour9.txt", cfg.DatabasePathname())
	assert.Equal(t, tourney.RenderLatex, cfg.RenderFormat())
}

func TestLoadRunConfig(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(pathname, []byte(`
order: 7
colors: 3
result_filter: 20
early_exit: false
db_path: /data/tour7.txt
render: ascii
`), 0644))

	cfg, err := LoadRunConfig(pathname)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 7, cfg.Order)
	assert.Equal(t, 30, cfg.TriangleFilter, "absent keys keep their defaults")
	assert.Equal(t, "/data/tour7.txt", cfg.DatabasePathname())

	opts := cfg.SearchOpts()
	assert.Equal(t, 3, opts.NumColors)
	assert.Equal(t, 20, opts.ResultFilter)
	assert.True(t, opts.NoEarlyExit)
	assert.Equal(t, tourney.RenderAscii, cfg.RenderFormat())
}

func TestLoadRunConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRunConfig(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, tourney.ErrConfiguration))

	pathname := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(pathname, []byte("order: [nine]\n"), 0644))
	_, err = LoadRunConfig(pathname)
	assert.True(t, errors.Is(err, tourney.ErrConfiguration))

	cfg, err := LoadRunConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRunConfig(), cfg)
}

func TestRunConfig_Validate(t *testing.T) {
	for param, mutate := range map[string]func(cfg *RunConfig){
		"order":           func(cfg *RunConfig) { cfg.Order = 11 },
		"colors":          func(cfg *RunConfig) { cfg.Colors = 0 },
		"triangle_filter": func(cfg *RunConfig) { cfg.TriangleFilter = -2 },
		"render":          func(cfg *RunConfig) { cfg.Render = "pdf" },
	} {
		cfg := DefaultRunConfig()
		mutate(&cfg)

		var cfgErr *tourney.ConfigurationError
		err := cfg.Validate()
		require.True(t, errors.As(err, &cfgErr), param)
		assert.Equal(t, param, cfgErr.Param)
	}
}

func TestRunConfig_ApplyFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "search"}
	addRunFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"-q", "5", "--no-early-exit", "--db-prefix", "/db/t", "--render", "none"}))

	cfg := DefaultRunConfig()
	cfg.Colors = 3
	require.NoError(t, cfg.ApplyFlags(cmd))

	assert.Equal(t, 5, cfg.Order)
	assert.Equal(t, 3, cfg.Colors, "unset flags leave the config alone")
	assert.False(t, cfg.EarlyExit)
	assert.Equal(t, "/db/t5.txt", cfg.DatabasePathname())
	assert.Equal(t, tourney.RenderNone, cfg.RenderFormat())
}

func TestSearchCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tour3.txt")
	catPath := filepath.Join(dir, "catalog")
	metricsPath := filepath.Join(dir, "metrics.prom")
	require.NoError(t, os.WriteFile(dbPath, []byte("111\n101\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{
		"search", "-q", "3", "--db", dbPath, "--triangle-filter", "0", "--colors", "1",
		"--catalog", catPath, "--metrics-file", metricsPath, "--qualifying",
	})
	require.NoError(t, rootCmd.Execute())
	assert.NotContains(t, out.String(), "tournament 000000")
	assert.Contains(t, out.String(), "q3 tournament 000001: 1 triangles, minimum reachability count 6")

	_, err := os.Stat(metricsPath)
	assert.NoError(t, err)

	// By default every evaluated tournament is reported with its score.
	out.Reset()
	rootCmd.SetArgs([]string{"search", "--qualifying=false"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "q3 tournament 000000: 0 triangles, minimum reachability count 3")
	assert.Contains(t, out.String(), "q3 tournament 000001: 1 triangles, minimum reachability count 6")

	ctx := tourney.NewCatalogContext()
	defer ctx.Close()
	cat, err := catalog.OpenCatalog(ctx, tourney.CatalogOpts{DbPathName: catPath})
	require.NoError(t, err)
	defer cat.Close()

	assert.EqualValues(t, 2, cat.NumResults(3), "rerunning the search adds nothing new")
	assert.NotEmpty(t, cat.State().LastRunID)

	sel := tourney.DefaultResultSelector(3)
	sel.QualifyingOnly = true
	qualifying := tourney.SelectFromCatalog(cat, sel).Collect()
	require.Len(t, qualifying, 1, "with one color the 3-cycle reaches every pair")
	assert.Equal(t, 1, qualifying[0].Index)
	assert.Equal(t, 6, qualifying[0].Score)
}

func TestSearchCommand_BadCatalog(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "tour3.txt")
	require.NoError(t, os.WriteFile(dbPath, []byte("111\n101\n"), 0644))

	// A plain file where the catalog directory should be.
	catPath := filepath.Join(dir, "catalog")
	require.NoError(t, os.WriteFile(catPath, nil, 0644))

	cmd := &cobra.Command{Use: "search", RunE: runSearch}
	addRunFlags(cmd)
	cmd.Flags().Bool("qualifying", false, "")
	cmd.SetArgs([]string{"-q", "3", "--db", dbPath, "--catalog", catPath})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
