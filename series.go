package supplycurve

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"
	"time"
)

// Variant tells which columns of a Row a Series carries.
type Variant int

const (
	// BlockCurve series are built from a block issuance schedule, they carry a block number.
	BlockCurve Variant = iota
	// ConstantCurve series carry a constant total supply and the part of it already distributed.
	ConstantCurve
)

// BlockSupply is the cumulative supply issued at a given block.
type BlockSupply struct {
	Block int64
	Total Quantity
}

// Row is a point of a supply curve.
type Row struct {
	Block          int64 // only for BlockCurve
	Date           time.Time
	Total          Quantity
	TotalPct       Percent
	Distributed    Quantity // only for ConstantCurve
	DistributedPct Percent  // only for ConstantCurve
}

// Series is a supply curve: rows in ascending date order.
//
// Series are immutable once built.
type Series struct {
	variant Variant
	rows    []Row
}

// Variant returns the kind of curve s is.
func (s *Series) Variant() Variant { return s.variant }

// Len returns the number of rows in the series.
func (s *Series) Len() int { return len(s.rows) }

// Row returns the i-th row.
func (s *Series) Row(i int) Row { return s.rows[i] }

// Last returns the last row, or false if the series is empty.
func (s *Series) Last() (Row, bool) {
	if len(s.rows) == 0 {
		return Row{}, false
	}
	return s.rows[len(s.rows)-1], true
}

// Rows returns an iterator over all rows, in chronological order.
func (s *Series) Rows() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		for i, r := range s.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// FirstAfter returns the first row dated strictly after now.
// It returns false if the whole series is on or before now.
func (s *Series) FirstAfter(now time.Time) (Row, bool) {
	for _, r := range s.rows {
		if r.Date.After(now) {
			return r, true
		}
	}
	return Row{}, false
}

// Decimate samples s with a fixed stride of len/maxSize rows (rounded down),
// starting from the first row. The stride only approximates maxSize: 15 rows
// with a maxSize of 10 have a stride of 1 and keep all rows. A non positive
// maxSize, or one larger than the series, returns s unchanged.
func (s *Series) Decimate(maxSize int) *Series {
	n := len(s.rows)
	if maxSize <= 0 || maxSize >= n {
		return s
	}
	stride := n / maxSize
	rows := make([]Row, 0, (n+stride-1)/stride)
	for i := 0; i < n; i += stride {
		rows = append(rows, s.rows[i])
	}
	return &Series{variant: s.variant, rows: rows}
}

// Columns returns the names of the columns of the series, as written in CSV.
func (s *Series) Columns() []string {
	if s.variant == ConstantCurve {
		return []string{"total_supply", "distributed_supply", "total_supply_pct", "distributed_supply_pct", "date"}
	}
	return []string{"block", "total_supply", "total_supply_pct", "date"}
}

// record returns the CSV cells of r, in Columns order, with date as the date cell.
func (s *Series) record(r Row, date string) []string {
	if s.variant == ConstantCurve {
		return []string{r.Total.String(), r.Distributed.String(), r.TotalPct.Text(), r.DistributedPct.Text(), date}
	}
	return []string{strconv.FormatInt(r.Block, 10), r.Total.String(), r.TotalPct.Text(), date}
}

// WriteCSV writes the series with a header line and no index column.
func (s *Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Columns()); err != nil {
		return err
	}
	for _, r := range s.rows {
		if err := cw.Write(s.record(r, formatTime(r.Date))); err != nil {
			return fmt.Errorf("writing row %s: %w", formatTime(r.Date), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatTime prints a day only when t is at midnight.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}
