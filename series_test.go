package supplycurve

import (
	"strings"
	"testing"
	"time"
)

func TestSeries_Decimate(t *testing.T) {
	totals := make([]int64, 25)
	for i := range totals {
		totals[i] = int64(i + 1)
	}
	s, err := BuildCurve(mustTime("2020-01-01"), Every(time.Hour), blocks(totals...))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		maxSize   int
		wantLen   int
		wantBlock []int64
	}{
		{0, 25, nil},
		{25, 25, nil},
		{100, 25, nil},
		{5, 5, []int64{0, 5, 10, 15, 20}},
		{10, 13, []int64{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24}},
		{20, 25, []int64{0, 1, 2, 3}},
		{1, 1, []int64{0}},
	}
	for _, tt := range tests {
		d := s.Decimate(tt.maxSize)
		if d.Len() != tt.wantLen {
			t.Errorf("Decimate(%d).Len() = %d, want %d", tt.maxSize, d.Len(), tt.wantLen)
			continue
		}
		for i, want := range tt.wantBlock {
			if got := d.Row(i).Block; got != want {
				t.Errorf("Decimate(%d).Row(%d).Block = %d, want %d", tt.maxSize, i, got, want)
			}
		}
	}
}

func TestSeries_FirstAfter(t *testing.T) {
	s, err := BuildCurve(mustTime("2020-01-01"), Weekly, blocks(100, 200, 400))
	if err != nil {
		t.Fatal(err)
	}

	r, ok := s.FirstAfter(mustTime("2020-01-03"))
	if !ok || r.Block != 1 {
		t.Errorf("FirstAfter(2020-01-03) = %v, %v want block 1", r, ok)
	}
	// strictly after
	r, ok = s.FirstAfter(mustTime("2020-01-08"))
	if !ok || r.Block != 2 {
		t.Errorf("FirstAfter(2020-01-08) = %v, %v want block 2", r, ok)
	}
	if _, ok := s.FirstAfter(mustTime("2020-01-15")); ok {
		t.Errorf("FirstAfter(last date) should not find any row")
	}
}

func TestSeries_WriteCSV(t *testing.T) {
	s, err := BuildCurve(mustTime("2020-01-01"), Weekly, blocks(100, 200, 400))
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := s.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV() unexpected error: %v", err)
	}
	want := `block,total_supply,total_supply_pct,date
0,100,25,2020-01-01
1,200,50,2020-01-08
2,400,100,2020-01-15
`
	if got := b.String(); got != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", got, want)
	}

	s, err = BuildCurve(mustTime("2009-01-03"), Every(10*time.Minute), blocks(50, 100))
	if err != nil {
		t.Fatal(err)
	}
	b.Reset()
	if err := s.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV() unexpected error: %v", err)
	}
	if !strings.Contains(b.String(), "1,100,100,2009-01-03 00:10:00\n") {
		t.Errorf("WriteCSV() should print times when not at midnight, got\n%s", b.String())
	}
}

func TestSeries_WriteCSV_Constant(t *testing.T) {
	s, err := BuildConstantCurve(mustTime("2021-03-01"), 2, Q(1000), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := s.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV() unexpected error: %v", err)
	}
	want := `total_supply,distributed_supply,total_supply_pct,distributed_supply_pct,date
1000,500,100,50,2021-03-01
1000,500,100,50,2021-03-08
`
	if got := b.String(); got != want {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", got, want)
	}
}
