package supplycurve

import (
	"errors"
	"testing"
	"time"
)

func mustTime(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseFrequency(t *testing.T) {
	start := mustTime("2020-01-31")
	tests := []struct {
		token string
		next  time.Time
	}{
		{"10min", start.Add(10 * time.Minute)},
		{"T", start.Add(time.Minute)},
		{"2h", start.Add(2 * time.Hour)},
		{"D", mustTime("2020-02-01")},
		{"W", mustTime("2020-02-07")},
		{"2W", mustTime("2020-02-14")},
		{"M", mustTime("2020-03-02")},
		{"Y", mustTime("2021-01-31")},
		{"10m30s", start.Add(10*time.Minute + 30*time.Second)},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			f, err := ParseFrequency(tt.token)
			if err != nil {
				t.Fatalf("ParseFrequency(%q) unexpected error: %v", tt.token, err)
			}
			if got := f.At(start, 1); !got.Equal(tt.next) {
				t.Errorf("ParseFrequency(%q).At(start, 1) = %v, want %v", tt.token, got, tt.next)
			}
			if f.String() != tt.token {
				t.Errorf("String() = %q, want %q", f.String(), tt.token)
			}
		})
	}
}

func TestParseFrequency_Invalid(t *testing.T) {
	for _, token := range []string{"", "0W", "fortnight", "-1h", "3X"} {
		t.Run(token, func(t *testing.T) {
			_, err := ParseFrequency(token)
			if !errors.Is(err, ErrInvalidFrequency) {
				t.Errorf("ParseFrequency(%q) error = %v, want ErrInvalidFrequency", token, err)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseFrequency(%q) error = %v, want an ErrInvalidArgument", token, err)
			}
		})
	}
}

func TestFrequency_Range(t *testing.T) {
	start := mustTime("2009-01-03")
	dates := Every(10*time.Minute).Range(start, 1000)
	if len(dates) != 1000 {
		t.Fatalf("Range() returned %d dates, want 1000", len(dates))
	}
	if !dates[0].Equal(start) {
		t.Errorf("Range()[0] = %v, want %v", dates[0], start)
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			t.Fatalf("Range() not strictly increasing at %d: %v then %v", i, dates[i-1], dates[i])
		}
	}
	if got := Weekly.Range(start, 0); got != nil {
		t.Errorf("Range(start, 0) = %v, want nil", got)
	}
}

func TestFrequency_MonthlyDoesNotDrift(t *testing.T) {
	f, err := ParseFrequency("M")
	if err != nil {
		t.Fatal(err)
	}
	start := mustTime("2021-01-15")
	if got, want := f.At(start, 13), mustTime("2022-02-15"); !got.Equal(want) {
		t.Errorf("At(start, 13) = %v, want %v", got, want)
	}
}
