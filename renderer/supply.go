package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/supplycurve"
	"github.com/etnz/supplycurve/store"
)

// SeriesMarkdown summarizes a supply curve: its first row, the first row after now, and its last row.
func SeriesMarkdown(name string, s *supplycurve.Series, now time.Time) string {
	b := &strings.Builder{}
	r := &seriesRenderer{w: b, constant: s.Variant() == supplycurve.ConstantCurve}
	r.Printf("# %s Monetary Base\n\n", name)
	r.Printf("*As of %s*\n\n", formatDate(now))

	last, ok := s.Last()
	if !ok {
		r.Printf("No supply data.\n")
		return b.String()
	}

	r.header()
	r.row("First", s.Row(0))
	ConditionalBlock(b, func(w io.Writer) bool {
		next, ok := s.FirstAfter(now)
		if ok && !next.Date.Equal(last.Date) {
			(&seriesRenderer{w: w, constant: r.constant}).row("Next", next)
			return true
		}
		return false
	})
	r.row("Last", last)
	r.Printf("\n*%d rows, from %s to %s*\n", s.Len(), formatDate(s.Row(0).Date), formatDate(last.Date))
	return b.String()
}

// ResampledMarkdown renders all rows of a resampled curve as a table.
func ResampledMarkdown(res *supplycurve.Resampled) string {
	b := &strings.Builder{}
	r := &seriesRenderer{w: b, constant: res.Variant() == supplycurve.ConstantCurve}
	r.Printf("## %s %s supply\n\n", res.Coin, res.Period)
	if res.Len() == 0 {
		r.Printf("No supply data.\n")
		return b.String()
	}
	r.header()
	for _, row := range res.Rows() {
		r.row(row.Bucket.Identifier(), row.Row)
	}
	return b.String()
}

// seriesRenderer formats supply rows into a markdown table.
type seriesRenderer struct {
	w        io.Writer
	constant bool // constant curves show the distributed supply instead of blocks
}

// Printf formats according to a format specifier and writes to the renderer's writer.
func (r *seriesRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *seriesRenderer) header() {
	if r.constant {
		r.Printf("| | Date | Total Supply | Distributed Supply | Distributed |\n")
		r.Printf("|:---|:---|---:|---:|---:|\n")
		return
	}
	r.Printf("| | Date | Block | Total Supply | Issued |\n")
	r.Printf("|:---|:---|---:|---:|---:|\n")
}

func (r *seriesRenderer) row(label string, row supplycurve.Row) {
	if r.constant {
		r.Printf("| %s | %s | %s | %s | %s |\n", label, formatDate(row.Date), row.Total, row.Distributed, row.DistributedPct)
		return
	}
	r.Printf("| %s | %s | %d | %s | %s |\n", label, formatDate(row.Date), row.Block, row.Total, row.TotalPct)
}

func formatDate(t time.Time) string { return t.Format("2006-01-02") }

// HistoryMarkdown renders the buckets recorded for a coin, as read back from the archive.
func HistoryMarkdown(coin, freq string, buckets []store.Bucket) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "## %s %s archive\n\n", coin, freq)
	if len(buckets) == 0 {
		fmt.Fprintf(b, "Nothing recorded.\n")
		return b.String()
	}
	fmt.Fprintf(b, "| Bucket | Total Supply | Issued |\n")
	fmt.Fprintf(b, "|:---|---:|---:|\n")
	for _, bk := range buckets {
		fmt.Fprintf(b, "| %s | %s | %s |\n", bk.Bucket, bk.Total, supplycurve.Percent(bk.TotalPct))
	}
	return b.String()
}
