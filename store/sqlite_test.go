package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/supplycurve"
)

func resampled(t *testing.T, totals ...int64) *supplycurve.Resampled {
	t.Helper()
	start, _ := time.Parse("2006-01-02", "2020-01-01")
	var blocks []supplycurve.BlockSupply
	for i, v := range totals {
		blocks = append(blocks, supplycurve.BlockSupply{Block: int64(i), Total: supplycurve.Q(v)})
	}
	monthly, err := supplycurve.ParseFrequency("M")
	if err != nil {
		t.Fatal(err)
	}
	s, err := supplycurve.BuildCurve(start, monthly, blocks)
	if err != nil {
		t.Fatal(err)
	}
	res, err := supplycurve.Resample(s, "TST", "monthly")
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSQLiteRecorder(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "supply.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRecorder() unexpected error: %v", err)
	}
	defer rec.Close()

	if err := rec.RecordResampled(resampled(t, 10, 20, 40)); err != nil {
		t.Fatalf("RecordResampled() unexpected error: %v", err)
	}
	// recording again replaces buckets
	if err := rec.RecordResampled(resampled(t, 10, 30, 40, 50)); err != nil {
		t.Fatalf("RecordResampled() unexpected error: %v", err)
	}

	got, err := rec.History("TST", "monthly")
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	want := []Bucket{
		{"2020-01", "10", 20},
		{"2020-02", "30", 60},
		{"2020-03", "40", 80},
		{"2020-04", "50", 100},
	}
	if len(got) != len(want) {
		t.Fatalf("History() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("History()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if got, _ := rec.History("TST", "yearly"); len(got) != 0 {
		t.Errorf("History(yearly) = %v, want nothing", got)
	}
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	if err := rec.RecordResampled(resampled(t, 1)); err != nil {
		t.Errorf("RecordResampled() = %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
