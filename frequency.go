package supplycurve

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/etnz/supplycurve/date"
)

// Frequency is the fixed period between two consecutive rows of a supply
// curve, typically the block time of a chain.
//
// It is either a fixed duration (seconds to weeks) or a number of calendar
// months or years.
type Frequency struct {
	step   time.Duration
	months int
	token  string
}

// Weekly is the frequency of constant supply curves.
var Weekly = Frequency{step: 7 * date.Day, token: "W"}

// Every returns a fixed frequency of d.
func Every(d time.Duration) Frequency {
	return Frequency{step: d, token: d.String()}
}

var frequencyRE = regexp.MustCompile(`^(\d*)(s|min|T|h|H|D|W|M|Y)$`)

// ParseFrequency parses a frequency token made of an optional positive
// multiple and a unit: s (second), min or T (minute), h or H (hour), D (day),
// W (week), M (calendar month), Y (calendar year). "10min", "W", "2h" are
// valid tokens. Go durations such as "10m30s" are accepted too.
func ParseFrequency(s string) (Frequency, error) {
	match := frequencyRE.FindStringSubmatch(s)
	if match == nil {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return Frequency{}, fmt.Errorf("%w %q", ErrInvalidFrequency, s)
		}
		return Frequency{step: d, token: s}, nil
	}

	n := 1
	if match[1] != "" {
		var err error
		n, err = strconv.Atoi(match[1])
		if err != nil || n <= 0 {
			return Frequency{}, fmt.Errorf("%w %q: multiple must be positive", ErrInvalidFrequency, s)
		}
	}

	f := Frequency{token: s}
	switch match[2] {
	case "s":
		f.step = time.Duration(n) * time.Second
	case "min", "T":
		f.step = time.Duration(n) * time.Minute
	case "h", "H":
		f.step = time.Duration(n) * time.Hour
	case "D":
		f.step = time.Duration(n) * date.Day
	case "W":
		f.step = time.Duration(n) * 7 * date.Day
	case "M":
		f.months = n
	case "Y":
		f.months = 12 * n
	}
	return f, nil
}

// IsZero reports whether f is the zero Frequency, which cannot generate dates.
func (f Frequency) IsZero() bool { return f.step == 0 && f.months == 0 }

// At returns the i-th date of a range starting at start.
//
// Calendar frequencies are computed from start, not from the previous date,
// so that month ends do not drift.
func (f Frequency) At(start time.Time, i int) time.Time {
	if f.months > 0 {
		return start.AddDate(0, f.months*i, 0)
	}
	return start.Add(time.Duration(i) * f.step)
}

// Range returns n dates starting at start, spaced by f.
func (f Frequency) Range(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = f.At(start, i)
	}
	return dates
}

func (f Frequency) String() string { return f.token }

// UnmarshalText lets yaml documents and flags carry frequencies.
func (f *Frequency) UnmarshalText(text []byte) error {
	v, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f Frequency) MarshalText() ([]byte, error) { return []byte(f.token), nil }
