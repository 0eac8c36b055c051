package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/supplycurve/batch"
	"github.com/etnz/supplycurve/config"
	"github.com/etnz/supplycurve/store"
	"github.com/google/subcommands"
)

type batchCmd struct {
	config string
	now    string
}

func (*batchCmd) Name() string     { return "batch" }
func (*batchCmd) Synopsis() string { return "chart and export all the coins of a configuration file" }
func (*batchCmd) Usage() string {
	return `mbase batch [-config <file>] [-now <date>]

  Builds, charts and resamples the supply curve of every coin described in
  the configuration file. Coins are processed concurrently and independently.
`
}

func (c *batchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.config, "config", "supply.yaml", "configuration file")
	f.StringVar(&c.now, "now", "", "current date (defaults to today)")
}

func (c *batchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now, err := parseNow(c.now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(c.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	rec, err := openRecorder(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rec.Close()

	reports, err := batch.Run(ctx, cfg, rec, now)
	printMarkdown(reportsMarkdown(reports))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// loadConfig loads and validates a configuration file, applying the global flags.
func loadConfig(name string) (*config.Config, error) {
	cfg, err := config.Load(name)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", name, err)
	}
	if *chartsDir != "" {
		cfg.ChartsDir = *chartsDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	return cfg, nil
}

func openRecorder(cfg *config.Config) (store.Recorder, error) {
	if cfg.SQLitePath == "" {
		return store.NewNoopRecorder(), nil
	}
	return store.NewSQLiteRecorder(cfg.SQLitePath)
}

func reportsMarkdown(reports []batch.Report) string {
	var b strings.Builder
	b.WriteString("| Coin | Rows | Chart | Exports | Error |\n")
	b.WriteString("|:---|---:|:---|:---|:---|\n")
	for _, r := range reports {
		if r.Coin == "" {
			continue
		}
		rows, errMsg := 0, ""
		if r.Series != nil {
			rows = r.Series.Len()
		}
		if r.Err != nil {
			errMsg = r.Err.Error()
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s |\n", r.Coin, rows, r.Chart, strings.Join(r.Exports, " "), errMsg)
	}
	return b.String()
}
