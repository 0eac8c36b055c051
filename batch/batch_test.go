package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/supplycurve"
	"github.com/etnz/supplycurve/config"
)

type memRecorder struct {
	got []string
}

func (m *memRecorder) RecordResampled(res *supplycurve.Resampled) error {
	m.got = append(m.got, res.FileName())
	return nil
}
func (m *memRecorder) Close() error { return nil }

func writeConfig(t *testing.T, dir, coins string) *config.Config {
	t.Helper()
	supply := "block,total_supply\n0,50\n1,75\n2,87.5\n3,100\n"
	if err := os.WriteFile(filepath.Join(dir, "btc.csv"), []byte(supply), 0644); err != nil {
		t.Fatal(err)
	}
	yml := "charts_dir: " + filepath.Join(dir, "charts") + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"parallel: 2\n" +
		"coins:\n" + strings.ReplaceAll(coins, "DIR", dir)
	name := filepath.Join(dir, "supply.yaml")
	if err := os.WriteFile(name, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(name)
	if err != nil {
		t.Fatalf("config.Load() unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	return cfg
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, `
  - name: Bitcoin
    symbol: BTC
    start: 2009-01-03
    block_time: 4Y
    supply: {file: DIR/btc.csv}
    resample: [yearly]
  - name: Ripple
    symbol: XRP
    start: 2013-01-07
    constant: {weeks: 1000, amount: 100000000000, distributed: 0.45}
    resample: [monthly, yearly]
`)
	now, _ := time.Parse(time.DateOnly, "2015-06-01")
	rec := &memRecorder{}

	reports, err := Run(context.Background(), cfg, rec, now)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Run() returned %d reports, want 2", len(reports))
	}

	btc := reports[0]
	if btc.Coin != "BTC" || btc.Series.Len() != 4 {
		t.Errorf("Run() BTC report = %+v", btc)
	}
	want := []string{
		filepath.Join(dir, "charts", "Bitcoin.png"),
		filepath.Join(dir, "charts", "Ripple.png"),
		filepath.Join(dir, "out", "BTC_yearly.csv"),
		filepath.Join(dir, "out", "XRP_monthly.csv"),
		filepath.Join(dir, "out", "XRP_yearly.csv"),
	}
	for _, name := range want {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("Run() did not write %s: %v", name, err)
		}
	}
	if btc.Chart != want[0] {
		t.Errorf("Run() BTC chart = %q, want %q", btc.Chart, want[0])
	}
	if len(rec.got) != 3 {
		t.Errorf("Run() recorded %v, want 3 exports", rec.got)
	}
}

func TestRun_IndependentCoins(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, `
  - name: Missing
    start: 2009-01-03
    block_time: 10min
    supply: {file: DIR/missing.csv}
  - name: Bitcoin
    start: 2009-01-03
    block_time: 4Y
    supply: {file: DIR/btc.csv}
    resample: [yearly]
`)
	now, _ := time.Parse(time.DateOnly, "2015-06-01")

	reports, err := Run(context.Background(), cfg, nil, now)
	if err == nil || !strings.Contains(err.Error(), `"Missing"`) {
		t.Errorf("Run() error = %v, want an error about coin Missing", err)
	}
	if !errors.Is(reports[0].Err, os.ErrNotExist) {
		t.Errorf("Run() Missing error = %v, want %v", reports[0].Err, os.ErrNotExist)
	}
	if reports[1].Err != nil || len(reports[1].Exports) != 1 {
		t.Errorf("Run() Bitcoin report = %+v, want one export and no error", reports[1])
	}
}

func TestRun_CurveInThePast(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, `
  - name: Bitcoin
    start: 2009-01-03
    block_time: 4Y
    supply: {file: DIR/btc.csv}
`)
	now, _ := time.Parse(time.DateOnly, "2030-01-01")

	reports, err := Run(context.Background(), cfg, nil, now)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if reports[0].Chart != "" {
		t.Errorf("Run() chart = %q, want none", reports[0].Chart)
	}
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, `
  - name: Bitcoin
    start: 2009-01-03
    block_time: 4Y
    supply: {file: DIR/btc.csv}
`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, cfg, nil, time.Now()); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
}

func TestScheduler_Register(t *testing.T) {
	cfg := &config.Config{Schedule: "not a cron spec"}
	s := NewScheduler(context.Background(), cfg, nil)
	if err := s.Register(); err == nil {
		t.Error("Register() with an invalid schedule should fail")
	}
	cfg.Schedule = "0 0 6 * * *"
	if err := s.Register(); err != nil {
		t.Errorf("Register() unexpected error: %v", err)
	}
}
