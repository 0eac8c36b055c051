package supplycurve

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/supplycurve/date"
)

// DefaultOutputDir is where resampled series are exported by default.
const DefaultOutputDir = "../output-data"

// ParseResampleFrequency parses the frequencies a series can be resampled to:
// weekly, monthly or yearly.
func ParseResampleFrequency(freq string) (date.Period, error) {
	p, err := date.ParsePeriod(freq)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidFrequency, freq)
	}
	switch p {
	case date.Weekly, date.Monthly, date.Yearly:
		return p, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidFrequency, freq)
	}
}

// ResampledRow is the first row of a calendar bucket.
type ResampledRow struct {
	Row
	Bucket date.Range // the calendar week, month or year of the row
}

// Resampled is a supply curve with a single row per calendar bucket, tagged with a coin identifier.
type Resampled struct {
	Coin   string
	Period date.Period

	freq    string // as requested, used in the file name
	variant Variant
	rows    []ResampledRow
}

// Resample keeps the first row of each calendar week, month or year of s, in
// their original order. freq is validated before anything else, and kept as
// given (without surrounding spaces) for the export file name, so "week" and
// "weekly" both bucket by week but export to different files.
func Resample(s *Series, coin, freq string) (*Resampled, error) {
	period, err := ParseResampleFrequency(freq)
	if err != nil {
		return nil, err
	}

	res := &Resampled{Coin: coin, Period: period, freq: strings.TrimSpace(freq), variant: s.variant}
	var bucket date.Range
	for _, r := range s.rows {
		day := date.FromTime(r.Date)
		if len(res.rows) > 0 && bucket.Contains(day) {
			continue
		}
		bucket = date.NewRange(day, period)
		res.rows = append(res.rows, ResampledRow{Row: r, Bucket: bucket})
	}
	return res, nil
}

// Variant returns the kind of curve that was resampled.
func (r *Resampled) Variant() Variant { return r.variant }

// Len returns the number of buckets.
func (r *Resampled) Len() int { return len(r.rows) }

// Rows returns an iterator over all rows, in their original order.
func (r *Resampled) Rows() iter.Seq2[int, ResampledRow] {
	return func(yield func(int, ResampledRow) bool) {
		for i, row := range r.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Columns returns the CSV header: the coin, then the columns of the original series.
func (r *Resampled) Columns() []string {
	s := Series{variant: r.variant}
	return append([]string{"coin"}, s.Columns()...)
}

// FileName returns the name of the CSV export, <coin>_<freq>.csv, freq as passed to Resample.
func (r *Resampled) FileName() string {
	return fmt.Sprintf("%s_%s.csv", r.Coin, r.freq)
}

// WriteCSV writes the resampled series with a header line and no index column.
// Dates are written as the first day of their bucket.
func (r *Resampled) WriteCSV(w io.Writer) error {
	s := Series{variant: r.variant}
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns()); err != nil {
		return err
	}
	for _, row := range r.rows {
		record := append([]string{r.Coin}, s.record(row.Row, row.Bucket.From.String())...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing bucket %s: %w", row.Bucket.Identifier(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Export writes the resampled series into dir, see FileName, and returns the file path.
func (r *Resampled) Export(dir string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	name := filepath.Join(dir, r.FileName())
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	if err := r.WriteCSV(f); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	log.Printf("Wrote %d lines to file %s", r.Len(), name)
	return name, nil
}
