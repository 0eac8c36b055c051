package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/supplycurve"
	"github.com/etnz/supplycurve/renderer"
	"github.com/etnz/supplycurve/store"
	"github.com/google/subcommands"
)

type resampleCmd struct {
	source sourceFlags
	coin    string
	freq    string
	sqlite  string
	history bool
}

func (*resampleCmd) Name() string     { return "resample" }
func (*resampleCmd) Synopsis() string { return "export the first row of each week, month or year" }
func (*resampleCmd) Usage() string {
	return `mbase resample -coin <id> -freq weekly|monthly|yearly -start <date> (-f <supply file> | -weeks <n> -amount <supply>) [-sqlite <db>]
mbase resample -coin <id> -freq weekly|monthly|yearly -sqlite <db> -history

  Keeps the first row of each calendar week, month or year of a supply
  curve, and exports it as <coin>_<freq>.csv in the output directory.
  With -sqlite the export is also recorded in the archive; -history displays
  the archived buckets instead.
`
}

func (c *resampleCmd) SetFlags(f *flag.FlagSet) {
	c.source.setStartFlag(f)
	c.source.setBlockFlags(f)
	c.source.setConstantFlags(f)
	f.StringVar(&c.coin, "coin", "", "coin identifier, written in the first column and in the file name")
	f.StringVar(&c.freq, "freq", "monthly", "resampling frequency: weekly, monthly or yearly")
	f.StringVar(&c.sqlite, "sqlite", "", "SQLite archive of resampled exports")
	f.BoolVar(&c.history, "history", false, "display the archived buckets of -coin at -freq, requires -sqlite")
}

func (c *resampleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.coin == "" {
		fmt.Fprintln(os.Stderr, "-coin is required")
		return subcommands.ExitUsageError
	}
	period, err := supplycurve.ParseResampleFrequency(c.freq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.history && c.sqlite == "" {
		fmt.Fprintln(os.Stderr, "-history requires -sqlite")
		return subcommands.ExitUsageError
	}

	var rec store.Recorder = store.NewNoopRecorder()
	if c.sqlite != "" {
		db, err := store.NewSQLiteRecorder(c.sqlite)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer db.Close()
		if c.history {
			buckets, err := db.History(c.coin, period.String())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading archive: %v\n", err)
				return subcommands.ExitFailure
			}
			printMarkdown(renderer.HistoryMarkdown(c.coin, period.String(), buckets))
			return subcommands.ExitSuccess
		}
		rec = db
	}

	s, err := c.source.build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building curve: %v\n", err)
		return subcommands.ExitFailure
	}
	res, err := supplycurve.Resample(s, c.coin, c.freq)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if _, err := res.Export(*outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := rec.RecordResampled(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording export: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ResampledMarkdown(res))
	return subcommands.ExitSuccess
}
