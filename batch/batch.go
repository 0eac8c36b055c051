// Package batch builds, charts and exports the supply curves of all the coins of a configuration.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/etnz/supplycurve"
	"github.com/etnz/supplycurve/chart"
	"github.com/etnz/supplycurve/config"
	"github.com/etnz/supplycurve/store"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of processing a single coin.
type Report struct {
	Coin    string
	Series  *supplycurve.Series
	Chart   string   // path to the chart, empty if not plotted
	Exports []string // paths to the resampled CSV files
	Err     error
}

// Run processes all coins of cfg, at most cfg.Parallel at once.
//
// Coins are independent: a failing coin is reported and does not stop the
// others. The returned error joins all coin errors, or is the context error
// if ctx was cancelled.
func Run(ctx context.Context, cfg *config.Config, rec store.Recorder, now time.Time) ([]Report, error) {
	if rec == nil {
		rec = store.NewNoopRecorder()
	}
	reports := make([]Report, len(cfg.Coins))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallel, 1))
	for i, coin := range cfg.Coins {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = process(cfg, coin, rec, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reports, err
	}

	var errs []error
	for _, r := range reports {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("coin %q: %w", r.Coin, r.Err))
		}
	}
	return reports, errors.Join(errs...)
}

// Build returns the supply curve of a coin.
func Build(coin config.Coin) (*supplycurve.Series, error) {
	start := coin.Start.Time()
	if coin.Constant != nil {
		return supplycurve.BuildConstantCurve(start, coin.Constant.Weeks, coin.Constant.Amount, coin.Constant.Distributed)
	}
	if coin.Supply == nil {
		return nil, errors.New("no supply source")
	}
	blocks, err := supplycurve.ReadBlockSupply(coin.Supply.File, coin.Supply.Path)
	if err != nil {
		return nil, err
	}
	return supplycurve.BuildCurve(start, coin.BlockTime, blocks)
}

// recordMu serializes exports when several coins share a recorder that is not safe for concurrent use.
var recordMu sync.Mutex

func process(cfg *config.Config, coin config.Coin, rec store.Recorder, now time.Time) Report {
	rep := Report{Coin: coin.ID()}
	s, err := Build(coin)
	if err != nil {
		rep.Err = fmt.Errorf("building curve: %w", err)
		return rep
	}
	rep.Series = s
	log.Printf("%s: %d rows", coin.Name, s.Len())

	if !coin.Plot.Disabled {
		opts := coin.ChartOptions(cfg.ChartsDir)
		opts.Now = now
		plotFn := chart.Plot
		if s.Variant() == supplycurve.ConstantCurve {
			plotFn = chart.PlotDistributed
		}
		switch _, err := plotFn(s, opts); {
		case errors.Is(err, chart.ErrNoFutureRow):
			log.Printf("%s: curve ends before %s, chart skipped", coin.Name, now.Format(time.DateOnly))
		case err != nil:
			rep.Err = fmt.Errorf("plotting: %w", err)
			return rep
		default:
			rep.Chart = chart.FileName(opts)
		}
	}

	for _, freq := range coin.Resample {
		res, err := supplycurve.Resample(s, coin.ID(), freq)
		if err != nil {
			rep.Err = err
			return rep
		}
		name, err := res.Export(cfg.OutputDir)
		if err != nil {
			rep.Err = fmt.Errorf("exporting %s: %w", freq, err)
			return rep
		}
		rep.Exports = append(rep.Exports, name)

		recordMu.Lock()
		err = rec.RecordResampled(res)
		recordMu.Unlock()
		if err != nil {
			log.Printf("%s: recording %s export: %v", coin.Name, freq, err)
		}
	}
	return rep
}
