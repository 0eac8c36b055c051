// Package config loads the YAML file describing the coins to chart and export in batch.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/etnz/supplycurve"
	"github.com/etnz/supplycurve/chart"
	"github.com/etnz/supplycurve/date"
	"gopkg.in/yaml.v3"
)

// Config holds the batch configuration.
type Config struct {
	ChartsDir  string `yaml:"charts_dir"`
	OutputDir  string `yaml:"output_dir"`
	SQLitePath string `yaml:"sqlite_path"`
	// Schedule is the cron spec of the watch command, with seconds.
	Schedule string `yaml:"schedule"`
	// Parallel is the number of coins processed at once.
	Parallel int `yaml:"parallel"`

	Coins []Coin `yaml:"coins"`
}

// Coin describes how to build, chart and export the supply curve of a coin.
type Coin struct {
	Name   string `yaml:"name"`   // display name
	Symbol string `yaml:"symbol"` // identifier in exports, defaults to Name

	Start     date.Date             `yaml:"start"`
	BlockTime supplycurve.Frequency `yaml:"block_time"`
	Supply    *Source               `yaml:"supply"`
	Constant  *Constant             `yaml:"constant"`

	Plot     Plot     `yaml:"plot"`
	Resample []string `yaml:"resample"`
}

// Source is a file holding a block issuance schedule, see supplycurve.ReadBlockSupply.
type Source struct {
	File string `yaml:"file"`
	Path string `yaml:"path"` // JSONPath, for json files only
}

// Constant describes a constant supply, partly distributed.
type Constant struct {
	Weeks       int                  `yaml:"weeks"`
	Amount      supplycurve.Quantity `yaml:"amount"`
	Distributed float64              `yaml:"distributed"` // fraction in [0, 1]
}

// Plot holds the chart options of a coin.
type Plot struct {
	Disabled bool      `yaml:"disabled"`
	Absolute bool      `yaml:"absolute"` // plot coins instead of percents
	MaxSize  int       `yaml:"max_size"`
	Style    string    `yaml:"style"`
	OutName  string    `yaml:"out_name"`
	YLim     []float64 `yaml:"ylim"`
}

// ID returns the identifier used in exports.
func (c Coin) ID() string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return c.Name
}

// ChartOptions returns the chart options of the coin.
func (c Coin) ChartOptions(dir string) chart.Options {
	opts := chart.DefaultOptions(c.Name)
	opts.Dir = dir
	opts.Pct = !c.Plot.Absolute
	opts.OutName = c.Plot.OutName
	if c.Plot.MaxSize > 0 {
		opts.MaxSize = c.Plot.MaxSize
	}
	if c.Plot.Style != "" {
		opts.Style = c.Plot.Style
	}
	if len(c.Plot.YLim) == 2 {
		opts.YRange = &chart.Range{Min: c.Plot.YLim[0], Max: c.Plot.YLim[1]}
	}
	return opts
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("SUPPLY_CHARTS_DIR"); v != "" {
		cfg.ChartsDir = v
	}
	if v := os.Getenv("SUPPLY_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("SUPPLY_SQLITE_PATH"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("SUPPLY_SCHEDULE"); v != "" {
		cfg.Schedule = v
	}

	// Defaults
	if cfg.ChartsDir == "" {
		cfg.ChartsDir = chart.DefaultDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = supplycurve.DefaultOutputDir
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 0 6 * * *"
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = 4
	}
	return cfg, nil
}

// Validate checks that every coin can be built, charted and exported.
func (c *Config) Validate() error {
	if len(c.Coins) == 0 {
		return errors.New("no coins configured")
	}
	seen := make(map[string]bool)
	for i, coin := range c.Coins {
		if coin.Name == "" {
			return fmt.Errorf("coins[%d].name is required", i)
		}
		if seen[coin.ID()] {
			return fmt.Errorf("coin %q is configured twice", coin.ID())
		}
		seen[coin.ID()] = true
		if coin.Start.IsZero() {
			return fmt.Errorf("coin %q: start is required", coin.Name)
		}
		switch {
		case coin.Supply != nil && coin.Constant != nil:
			return fmt.Errorf("coin %q: supply and constant are exclusive", coin.Name)
		case coin.Supply != nil:
			if coin.Supply.File == "" {
				return fmt.Errorf("coin %q: supply.file is required", coin.Name)
			}
			if coin.BlockTime.IsZero() {
				return fmt.Errorf("coin %q: block_time is required", coin.Name)
			}
		case coin.Constant != nil:
			if coin.Constant.Weeks <= 0 {
				return fmt.Errorf("coin %q: constant.weeks must be positive", coin.Name)
			}
		default:
			return fmt.Errorf("coin %q: either supply or constant is required", coin.Name)
		}
		for _, freq := range coin.Resample {
			if _, err := supplycurve.ParseResampleFrequency(freq); err != nil {
				return fmt.Errorf("coin %q: %w", coin.Name, err)
			}
		}
		if _, err := chart.ParseStyle(coin.Plot.Style, nil); err != nil {
			return fmt.Errorf("coin %q: %w", coin.Name, err)
		}
		if l := len(coin.Plot.YLim); l != 0 && l != 2 {
			return fmt.Errorf("coin %q: plot.ylim wants [min, max], got %v", coin.Name, coin.Plot.YLim)
		}
	}
	return nil
}
