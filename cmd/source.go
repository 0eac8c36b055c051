package cmd

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/supplycurve"
	"github.com/etnz/supplycurve/date"
)

// sourceFlags are the flags selecting the supply curve of a command: either
// a block issuance schedule file, or a constant supply.
type sourceFlags struct {
	start string

	file      string
	path      string
	blockTime string

	weeks       int
	amount      string
	distributed float64
}

func (s *sourceFlags) setBlockFlags(f *flag.FlagSet) {
	f.StringVar(&s.file, "f", "", "supply file: .csv (block,total_supply), .jsonl or .json")
	f.StringVar(&s.path, "path", "", "JSONPath selecting the supply in a .json file (defaults to $[*])")
	f.StringVar(&s.blockTime, "block-time", "10min", "time between two rows of the supply file, e.g. 10min, 1D, 4Y")
}

func (s *sourceFlags) setConstantFlags(f *flag.FlagSet) {
	f.IntVar(&s.weeks, "weeks", 0, "number of weeks of a constant supply")
	f.StringVar(&s.amount, "amount", "", "constant total supply")
	f.Float64Var(&s.distributed, "distributed", 0, "fraction of the constant supply already distributed, in [0, 1]")
}

func (s *sourceFlags) setStartFlag(f *flag.FlagSet) {
	f.StringVar(&s.start, "start", "", "date of the first row (YYYY-MM-DD)")
}

func (s *sourceFlags) constant() bool { return s.weeks > 0 || s.amount != "" }

// build returns the selected supply curve.
func (s *sourceFlags) build() (*supplycurve.Series, error) {
	if s.start == "" {
		return nil, errors.New("-start is required")
	}
	start, err := date.Parse(s.start)
	if err != nil {
		return nil, fmt.Errorf("invalid -start: %w", err)
	}

	if s.constant() {
		if s.file != "" {
			return nil, errors.New("-f and constant supply flags are exclusive")
		}
		amount, err := supplycurve.ParseQuantity(s.amount)
		if err != nil {
			return nil, fmt.Errorf("invalid -amount: %w", err)
		}
		return supplycurve.BuildConstantCurve(start.Time(), s.weeks, amount, s.distributed)
	}

	if s.file == "" {
		return nil, errors.New("either -f or -weeks and -amount are required")
	}
	blockTime, err := supplycurve.ParseFrequency(s.blockTime)
	if err != nil {
		return nil, fmt.Errorf("invalid -block-time: %w", err)
	}
	blocks, err := supplycurve.ReadBlockSupply(s.file, s.path)
	if err != nil {
		return nil, err
	}
	return supplycurve.BuildCurve(start.Time(), blockTime, blocks)
}

// parseNow parses the -now flag, empty means the current time.
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -now: %w", err)
	}
	return d.Time(), nil
}
