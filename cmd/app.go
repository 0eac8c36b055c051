// Package cmd implements the CLI application to build, chart and export monetary supply curves.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&curveCmd{}, "curves")
	c.Register(&constantCmd{}, "curves")
	c.Register(&plotCmd{}, "curves")
	c.Register(&resampleCmd{}, "curves")

	c.Register(&batchCmd{}, "batch")
	c.Register(&watchCmd{}, "batch")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var chartsDir = flag.String("charts-dir", "", "Directory where charts are written (defaults to ../charts)")
var outputDir = flag.String("output-dir", "", "Directory where resampled series are exported (defaults to ../output-data)")
var rawMarkdown = flag.Bool("raw", false, "Print markdown without terminal formatting")

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// createOutput opens name for writing, "-" means standard output.
func createOutput(name string) (*os.File, func() error, error) {
	if name == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// parseYLim parses a "min,max" y axis range.
func parseYLim(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid y range %q, want min,max", s)
	}
	var lim []float64
	for _, p := range parts {
		var v float64
		if _, err := fmt.Sscan(strings.TrimSpace(p), &v); err != nil {
			return nil, fmt.Errorf("invalid y range %q: %w", s, err)
		}
		lim = append(lim, v)
	}
	if lim[0] >= lim[1] {
		return nil, fmt.Errorf("invalid y range %q, min must be lower than max", s)
	}
	return lim, nil
}
