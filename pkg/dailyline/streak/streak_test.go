package streak

import (
	"testing"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
)

func entriesOn(dates ...string) []entry.Entry {
	out := make([]entry.Entry, len(dates))
	for i, d := range dates {
		out[i] = entry.Entry{ID: "entry-" + d, Date: d, Text: "sample"}
	}
	return out
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  Result
	}{
		{"empty", nil, "2024-03-05", Result{}},
		{"current and longest", []string{"2024-03-01", "2024-03-02", "2024-03-04", "2024-03-05"}, "2024-03-05", Result{Current: 2, Longest: 2}},
		{"no entry today", []string{"2024-03-01"}, "2024-03-02", Result{Current: 0, Longest: 1}},
		{"unsorted with duplicates", []string{"2024-03-03", "2024-03-01", "2024-03-02", "2024-03-02"}, "2024-03-03", Result{Current: 3, Longest: 3}},
		{"across month end", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, "2024-03-01", Result{Current: 3, Longest: 3}},
		{"older run is longest", []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-03-04", "2024-03-05"}, "2024-03-05", Result{Current: 2, Longest: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(entriesOn(tt.dates...), tt.today); got != tt.want {
				t.Errorf("Calculate(%v, %q) = %+v, want %+v", tt.dates, tt.today, got, tt.want)
			}
		})
	}
}
