package chart

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/supplycurve"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultDir is where charts are written by default.
const DefaultDir = "../charts"

// ErrNoFutureRow is returned when no row of the series is after the current
// date, so there is nothing to mark.
var ErrNoFutureRow = errors.New("no supply row after the current date")

// Range is a closed interval of the y axis.
type Range struct{ Min, Max float64 }

// Options configure a supply chart.
type Options struct {
	Name    string    // coin display name, used in the title
	Pct     bool      // plot percent of the final supply rather than coins
	MaxSize int       // decimation target, see Series.Decimate, 0 means all
	Style   string    // line style of the total supply, see ParseStyle
	OutName string    // file name without extension, defaults to Name
	YRange  *Range    // y axis limits, nil means automatic
	Now     time.Time // current date, zero means time.Now()
	Dir     string    // output directory, defaults to DefaultDir
}

// DefaultOptions returns the usual options to chart a coin: in percent,
// decimated to about 10000 points, solid line.
func DefaultOptions(name string) Options {
	return Options{Name: name, Pct: true, MaxSize: 10000, Style: "-"}
}

// FileName returns the path of the chart written with opts.
func FileName(opts Options) string {
	opts = opts.withDefaults()
	return filepath.Join(opts.Dir, opts.OutName+".png")
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.OutName == "" {
		o.OutName = o.Name
	}
	if o.Style == "" {
		o.Style = "-"
	}
	return o
}

// value returns the plotted value of a row.
type value func(supplycurve.Row) float64

func totalValue(pct bool) value {
	if pct {
		return func(r supplycurve.Row) float64 { return float64(r.TotalPct) }
	}
	return func(r supplycurve.Row) float64 { return r.Total.Float64() }
}

func distributedValue(pct bool) value {
	if pct {
		return func(r supplycurve.Row) float64 { return float64(r.DistributedPct) }
	}
	return func(r supplycurve.Row) float64 { return r.Distributed.Float64() }
}

// points returns the (date, value) points of s, dates in unix seconds as expected by plot.TimeTicks.
func points(s *supplycurve.Series, v value) plotter.XYs {
	xys := make(plotter.XYs, 0, s.Len())
	for _, r := range s.Rows() {
		xys = append(xys, plotter.XY{X: float64(r.Date.Unix()), Y: v(r)})
	}
	return xys
}

// Plot charts the total supply of s and writes it to <Dir>/<OutName>.png.
//
// The first row after opts.Now is marked. If there is none, ErrNoFutureRow is
// returned and nothing is written.
func Plot(s *supplycurve.Series, opts Options) (*plot.Plot, error) {
	opts = opts.withDefaults()
	lines, m, err := totalLayers(s, opts)
	if err != nil {
		return nil, err
	}
	return render(lines, m, opts)
}

// PlotDistributed charts the total supply of a constant curve, and the part
// of it already distributed as a dashed line. The marker is on the
// distributed supply.
func PlotDistributed(s *supplycurve.Series, opts Options) (*plot.Plot, error) {
	opts = opts.withDefaults()
	lines, m, err := distributedLayers(s, opts)
	if err != nil {
		return nil, err
	}
	return render(lines, m, opts)
}

// line is a labelled curve of a chart.
type line struct {
	label string
	xys   plotter.XYs
	style draw.LineStyle
}

// marker is the current date point, labelled by its year.
type marker struct {
	label string
	xy    plotter.XY
}

func newMarker(r supplycurve.Row, v value) marker {
	return marker{label: r.Date.Format("2006"), xy: plotter.XY{X: float64(r.Date.Unix()), Y: v(r)}}
}

// totalLayers returns the total supply line and its marker.
func totalLayers(s *supplycurve.Series, opts Options) ([]line, marker, error) {
	current, err := currentRow(s, opts.Now)
	if err != nil {
		return nil, marker{}, err
	}
	style, err := ParseStyle(opts.Style, blue)
	if err != nil {
		return nil, marker{}, err
	}
	total := totalValue(opts.Pct)
	lines := []line{{label: "distributed supply", xys: points(s.Decimate(opts.MaxSize), total), style: style}}
	return lines, newMarker(current, total), nil
}

// distributedLayers returns the total and distributed supply lines, and the
// marker on the distributed supply.
func distributedLayers(s *supplycurve.Series, opts Options) ([]line, marker, error) {
	if s.Variant() != supplycurve.ConstantCurve {
		return nil, marker{}, fmt.Errorf("%w: series has no distributed supply", supplycurve.ErrInvalidArgument)
	}
	current, err := currentRow(s, opts.Now)
	if err != nil {
		return nil, marker{}, err
	}
	style, err := ParseStyle(opts.Style, blue)
	if err != nil {
		return nil, marker{}, err
	}
	dashed, err := ParseStyle("--", orange)
	if err != nil {
		return nil, marker{}, err
	}

	d := s.Decimate(opts.MaxSize)
	distributed := distributedValue(opts.Pct)
	lines := []line{
		{label: "total supply", xys: points(d, totalValue(opts.Pct)), style: style},
		{label: distributedLabel(opts.Now), xys: points(d, distributed), style: dashed},
	}
	return lines, newMarker(current, distributed), nil
}

func distributedLabel(now time.Time) string {
	return fmt.Sprintf("distributed supply (%s)", now.Format("Jan 2006"))
}

func currentRow(s *supplycurve.Series, now time.Time) (supplycurve.Row, error) {
	if s.Len() == 0 {
		return supplycurve.Row{}, supplycurve.ErrEmptySeries
	}
	r, ok := s.FirstAfter(now)
	if !ok {
		last, _ := s.Last()
		return r, fmt.Errorf("%w: series ends on %s", ErrNoFutureRow, last.Date.Format("2006-01-02"))
	}
	return r, nil
}

// render draws lines and the marker, then writes the chart.
func render(lines []line, m marker, opts Options) (*plot.Plot, error) {
	p := newPlot(opts.Name)
	for _, l := range lines {
		if err := addLine(p, l); err != nil {
			return nil, err
		}
	}
	if err := addMarker(p, m); err != nil {
		return nil, err
	}
	return p, finish(p, opts)
}

func newPlot(name string) *plot.Plot {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s Monetary Base", name)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(12)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006"}
	p.Legend.Top = false
	p.Legend.Left = false
	return p
}

func addLine(p *plot.Plot, l line) error {
	pl, err := plotter.NewLine(l.xys)
	if err != nil {
		return fmt.Errorf("cannot plot %s: %w", l.label, err)
	}
	pl.LineStyle = l.style
	p.Add(pl)
	p.Legend.Add(l.label, pl)
	return nil
}

func addMarker(p *plot.Plot, m marker) error {
	sc, err := plotter.NewScatter(plotter.XYs{m.xy})
	if err != nil {
		return err
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: color.Black, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}
	p.Add(sc)
	p.Legend.Add(m.label, sc)
	return nil
}

// percentTicks labels the ticks of another Ticker as percents.
type percentTicks struct{ plot.Ticker }

func (t percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.Ticker.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" && !strings.HasSuffix(ticks[i].Label, "%") {
			ticks[i].Label += "%"
		}
	}
	return ticks
}

// finish applies the y axis options and writes the chart.
func finish(p *plot.Plot, opts Options) error {
	if opts.YRange != nil {
		p.Y.Min, p.Y.Max = opts.YRange.Min, opts.YRange.Max
	}
	if opts.Pct {
		p.Y.Tick.Marker = percentTicks{p.Y.Tick.Marker}
	}
	_, err := SaveIn(p, opts.Dir, opts.OutName)
	return err
}
