// Package streak computes journaling streaks over calendar days.
package streak

import (
	"sort"

	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
)

// Result holds the current and longest runs of consecutive days.
type Result struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Calculate returns the streaks of entries as of todayKey. Several entries
// on one day count once. The current streak is zero unless the latest
// entry is on todayKey.
func Calculate(entries []entry.Entry, todayKey string) Result {
	dates := uniqueDates(entries)
	if len(dates) == 0 {
		return Result{}
	}

	res := Result{Longest: 1}
	run := 1
	for i := 1; i < len(dates); i++ {
		if consecutive(dates[i-1], dates[i]) {
			run++
			res.Longest = max(res.Longest, run)
		} else {
			run = 1
		}
	}

	if dates[len(dates)-1] != todayKey {
		return res
	}
	res.Current = 1
	for i := len(dates) - 1; i > 0; i-- {
		if !consecutive(dates[i-1], dates[i]) {
			break
		}
		res.Current++
	}
	return res
}

func consecutive(prev, next string) bool {
	return datekey.AddDays(prev, 1) == next
}

func uniqueDates(entries []entry.Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		dates = append(dates, e.Date)
	}
	sort.Strings(dates)
	return dates
}
