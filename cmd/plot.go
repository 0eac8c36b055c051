package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/supplycurve"
	"github.com/etnz/supplycurve/chart"
	"github.com/google/subcommands"
)

type plotCmd struct {
	source  sourceFlags
	name    string
	abs     bool
	maxSize int
	style   string
	out     string
	ylim    string
	now     string
}

func (*plotCmd) Name() string     { return "plot" }
func (*plotCmd) Synopsis() string { return "chart a supply curve" }
func (*plotCmd) Usage() string {
	return `mbase plot -name <coin> -start <date> (-f <supply file> | -weeks <n> -amount <supply>) [options]

  Charts the supply curve of a coin as a PNG image, with a marker on the
  first row after the current date. Constant supplies also chart their
  distributed supply.
`
}

func (c *plotCmd) SetFlags(f *flag.FlagSet) {
	c.source.setStartFlag(f)
	c.source.setBlockFlags(f)
	c.source.setConstantFlags(f)
	f.StringVar(&c.name, "name", "", "coin name, used in the title and as the default file name")
	f.BoolVar(&c.abs, "abs", false, "chart the supply in coins rather than in percent of the final supply")
	f.IntVar(&c.maxSize, "max-size", 10000, "decimation target, one row every len/max-size rows is plotted")
	f.StringVar(&c.style, "style", "-", `line style: "-", "--", ":" or "-.", optionally prefixed by a color code (b, g, r, c, m, y, k)`)
	f.StringVar(&c.out, "o", "", "file name without extension (defaults to -name)")
	f.StringVar(&c.ylim, "ylim", "", "y axis range as min,max")
	f.StringVar(&c.now, "now", "", "current date (defaults to today)")
}

func (c *plotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "-name is required")
		return subcommands.ExitUsageError
	}
	opts := chart.DefaultOptions(c.name)
	opts.Pct = !c.abs
	opts.MaxSize = c.maxSize
	opts.Style = c.style
	opts.OutName = c.out
	opts.Dir = *chartsDir

	var err error
	if opts.Now, err = parseNow(c.now); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	lim, err := parseYLim(c.ylim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if lim != nil {
		opts.YRange = &chart.Range{Min: lim[0], Max: lim[1]}
	}

	s, err := c.source.build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building curve: %v\n", err)
		return subcommands.ExitFailure
	}

	plotFn := chart.Plot
	if s.Variant() == supplycurve.ConstantCurve {
		plotFn = chart.PlotDistributed
	}
	if _, err := plotFn(s, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error plotting %s: %v\n", c.name, err)
		return subcommands.ExitFailure
	}
	fmt.Println(chart.FileName(opts))
	return subcommands.ExitSuccess
}
