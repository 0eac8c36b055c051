package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type constantCmd struct {
	curve curveCmd
}

func (*constantCmd) Name() string     { return "constant" }
func (*constantCmd) Synopsis() string { return "build a constant, partly distributed, supply curve" }
func (*constantCmd) Usage() string {
	return `mbase constant -start <date> -weeks <n> -amount <supply> [-distributed <fraction>] [-csv <file>]

  Builds a weekly curve of a supply that is entirely issued, of which only a
  fraction is distributed, and displays a summary.
`
}

func (c *constantCmd) SetFlags(f *flag.FlagSet) {
	c.curve.source.setStartFlag(f)
	c.curve.source.setConstantFlags(f)
	f.StringVar(&c.curve.name, "name", "", "coin name")
	f.StringVar(&c.curve.now, "now", "", "current date (defaults to today)")
	f.StringVar(&c.curve.csv, "csv", "", "write the curve as CSV into this file, - for standard output")
}

func (c *constantCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if !c.curve.source.constant() {
		fmt.Fprintln(os.Stderr, "-weeks and -amount are required")
		return subcommands.ExitUsageError
	}
	return c.curve.Execute(ctx, f, args...)
}
