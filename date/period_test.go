package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{"A day", New(2025, time.September, 8), Daily, Range{New(2025, time.September, 8), New(2025, time.September, 8)}},
		{"A Wednesday", New(2025, time.September, 10), Weekly, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{"A leap year", New(2024, time.February, 15), Monthly, Range{New(2024, time.February, 1), New(2024, time.February, 29)}},
		{"Q2", New(2025, time.May, 20), Quarterly, Range{New(2025, time.April, 1), New(2025, time.June, 30)}},
		{"A year", New(2025, time.September, 8), Yearly, Range{New(2025, time.January, 1), New(2025, time.December, 31)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(New(2024, time.February, 10), Monthly)
	if !r.Contains(New(2024, time.February, 29)) {
		t.Errorf("%v should contain the last day of the month", r)
	}
	if r.Contains(New(2024, time.March, 1)) {
		t.Errorf("%v should not contain the next month", r)
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"Daily Identifier", NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{"Weekly Identifier", NewRange(New(2025, time.September, 8), Weekly), "2025-W37"},
		{"Early Week Identifier", NewRange(New(2025, time.January, 6), Weekly), "2025-W02"},
		{"Monthly Identifier", NewRange(New(2025, time.September, 1), Monthly), "2025-09"},
		{"Quarterly Identifier", NewRange(New(2025, time.July, 1), Quarterly), "2025-Q3"},
		{"Yearly Identifier", NewRange(New(2025, time.January, 1), Yearly), "2025"},
		{"Custom Range Identifier", Range{From: New(2025, time.September, 2), To: New(2025, time.September, 10)}, "2025-09-02_2025-09-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Period
		wantErr bool
	}{
		{"Daily", "daily", Daily, false},
		{"Weekly", "weekly", Weekly, false},
		{"Monthly", "Monthly", Monthly, false},
		{"Quarterly", "quarterly", Quarterly, false},
		{"Yearly", "yearly", Yearly, false},
		{"Unknown", "unknown", Daily, true},
		{"Week alias", "week", Weekly, false},
		{"Year alias", " year ", Yearly, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParsePeriod() error = %v, wantErr %v", err, tc.wantErr)
				return
			}
			if got != tc.want {
				t.Errorf("ParsePeriod() = %v, want %v", got, tc.want)
			}
		})
	}
}
