package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/2x3systems/tourney/libtourney"
	"github.com/2x3systems/tourney/tourney"
)

// RunConfig holds the parameters of a search run, read from YAML and overridden by command line flags.
type RunConfig struct {
	Order          int    `yaml:"order"`
	Colors         int    `yaml:"colors"`
	TriangleFilter int    `yaml:"triangle_filter"`
	ResultFilter   int    `yaml:"result_filter"` // -1 selects 2q(q-1)/3
	EarlyExit      bool   `yaml:"early_exit"`
	EmitSkipped    bool   `yaml:"emit_skipped"`
	DbPrefix       string `yaml:"db_prefix"`
	DbPath         string `yaml:"db_path"` // overrides db_prefix
	Catalog        string `yaml:"catalog"`
	MetricsFile    string `yaml:"metrics_file"`
	Render         string `yaml:"render"`
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Order:          9,
		Colors:         tourney.DefaultNumColors,
		TriangleFilter: 30,
		ResultFilter:   -1,
		EarlyExit:      true,
		DbPrefix:       "tour",
		Render:         "latex",
	}
}

// LoadRunConfig reads a YAML run config.  Keys absent from the file keep their default values.
func LoadRunConfig(pathname string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if pathname == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(pathname)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, &tourney.ConfigurationError{
				Param:  "config",
				Reason: fmt.Sprintf("%s does not exist", pathname),
			}
		}
		return cfg, errors.Wrapf(err, "reading config %s", pathname)
	}

	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &tourney.ConfigurationError{
			Param:  "config",
			Reason: err.Error(),
		}
	}
	return cfg, nil
}

// Validate checks every parameter is in range.
func (cfg *RunConfig) Validate() error {
	if cfg.Order < 1 || cfg.Order > tourney.MaxOrder {
		return &tourney.ConfigurationError{
			Param:  "order",
			Reason: fmt.Sprintf("must be in 1..%d, got %d", tourney.MaxOrder, cfg.Order),
		}
	}
	if _, err := tourney.ParseRenderFormat(cfg.Render); err != nil {
		return &tourney.ConfigurationError{
			Param:  "render",
			Reason: fmt.Sprintf("unknown format %q", cfg.Render),
		}
	}
	opts := cfg.SearchOpts()
	return opts.Validate()
}

// SearchOpts forms the search options this config selects.
func (cfg *RunConfig) SearchOpts() libtourney.SearchOpts {
	opts := libtourney.DefaultSearchOpts(cfg.Order)
	opts.NumColors = cfg.Colors
	opts.TriangleFilter = cfg.TriangleFilter
	if cfg.ResultFilter >= 0 {
		opts.ResultFilter = cfg.ResultFilter
	}
	opts.NoEarlyExit = !cfg.EarlyExit
	opts.EmitSkipped = cfg.EmitSkipped
	return opts
}

// DatabasePathname returns db_path, or the conventional database name for the configured order.
func (cfg *RunConfig) DatabasePathname() string {
	if cfg.DbPath != "" {
		return cfg.DbPath
	}
	return libtourney.DatabasePath(cfg.DbPrefix, cfg.Order)
}

func (cfg *RunConfig) RenderFormat() tourney.RenderFormat {
	format, _ := tourney.ParseRenderFormat(cfg.Render)
	return format
}

// addRunFlags registers the flags ApplyFlags() reads.
func addRunFlags(cmd *cobra.Command) {
	def := DefaultRunConfig()
	fs := cmd.Flags()
	fs.IntP("order", "q", def.Order, "tournament order")
	fs.IntP("colors", "c", def.Colors, "number of edge colors")
	fs.Int("triangle-filter", def.TriangleFilter, "skip tournaments with fewer directed triangles")
	fs.Int("result-filter", def.ResultFilter, "stop searching a tournament once a coloring scores at or below this (-1 for 2q(q-1)/3)")
	fs.Bool("no-early-exit", false, "score every coloring of every tournament")
	fs.Bool("emit-skipped", def.EmitSkipped, "also report tournaments excluded by the triangle filter")
	fs.String("db-prefix", def.DbPrefix, "tournament database prefix, completed as <prefix><order>.txt")
	fs.String("db", "", "tournament database pathname (overrides --db-prefix)")
	fs.String("catalog", "", "result catalog directory to add results to")
	fs.String("metrics-file", "", "write prometheus metrics to this file when done")
	fs.String("render", def.Render, "matrix format for qualifying tournaments: latex, ascii, or none")
}

// ApplyFlags overrides cfg with each flag set on the command line.
func (cfg *RunConfig) ApplyFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()

	var err error
	setInt := func(name string, dst *int) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetInt(name)
		}
	}
	setString := func(name string, dst *string) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetString(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetBool(name)
		}
	}

	setInt("order", &cfg.Order)
	setInt("colors", &cfg.Colors)
	setInt("triangle-filter", &cfg.TriangleFilter)
	setInt("result-filter", &cfg.ResultFilter)
	setBool("emit-skipped", &cfg.EmitSkipped)
	setString("db-prefix", &cfg.DbPrefix)
	setString("db", &cfg.DbPath)
	setString("catalog", &cfg.Catalog)
	setString("metrics-file", &cfg.MetricsFile)
	setString("render", &cfg.Render)

	if err == nil && fs.Changed("no-early-exit") {
		var noEarlyExit bool
		setBool("no-early-exit", &noEarlyExit)
		cfg.EarlyExit = !noEarlyExit
	}
	return err
}
