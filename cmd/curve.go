package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/supplycurve/renderer"
	"github.com/google/subcommands"
)

type curveCmd struct {
	source sourceFlags
	name   string
	now    string
	csv    string
}

func (*curveCmd) Name() string     { return "curve" }
func (*curveCmd) Synopsis() string { return "date a block issuance schedule" }
func (*curveCmd) Usage() string {
	return `mbase curve -f <supply file> -start <date> [-block-time <freq>] [-csv <file>]

  Dates every row of a block issuance schedule, computes its percent of the
  final supply, and displays a summary. Use -csv - to print the whole curve.
`
}

func (c *curveCmd) SetFlags(f *flag.FlagSet) {
	c.source.setStartFlag(f)
	c.source.setBlockFlags(f)
	f.StringVar(&c.name, "name", "", "coin name")
	f.StringVar(&c.now, "now", "", "current date (defaults to today)")
	f.StringVar(&c.csv, "csv", "", "write the curve as CSV into this file, - for standard output")
}

func (c *curveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	now, err := parseNow(c.now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := c.source.build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building curve: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csv != "" {
		w, closer, err := createOutput(c.csv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		err = s.WriteCSV(w)
		if cerr := closer(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing curve: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.csv == "-" {
			return subcommands.ExitSuccess
		}
	}

	printMarkdown(renderer.SeriesMarkdown(c.name, s, now))
	return subcommands.ExitSuccess
}
