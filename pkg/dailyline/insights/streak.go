package insights

import (
	"math"
	"sort"

	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
)

// Streak quality window and thresholds.
const (
	StreakWindowDays     = 30
	MinStreakEntries     = 4
	excellentConsistency = 80
	solidConsistency     = 50
)

// StreakQuality scores how consistently the user wrote in the last 30 days.
type StreakQuality struct {
	Status              Status `json:"status" jsonschema:"enum=ready,enum=insufficient"`
	Summary             string `json:"summary"`
	ConsistencyScore    int    `json:"consistencyScore"`
	EntriesInLast30Days int    `json:"entriesInLast30Days"`
	LongestGapDays      int    `json:"longestGapDays"`
}

func (c StreakQuality) CardStatus() Status  { return c.Status }
func (c StreakQuality) CardSummary() string { return c.Summary }

const (
	streakInsufficient = "Add at least four entries in a month to score streak quality."
	streakExcellent    = "Excellent consistency in the last 30 days."
	streakSolid        = "Solid consistency with room to tighten gaps."
	streakLight        = "Coverage is light. Short daily entries will quickly lift this score."
)

func buildStreakQuality(entries []entry.Entry, todayKey string) StreakQuality {
	windowStart := datekey.AddDays(todayKey, -(StreakWindowDays - 1))

	seen := make(map[string]struct{})
	var dates []string
	for _, e := range entries {
		if e.Date < windowStart || e.Date > todayKey {
			continue
		}
		if _, ok := datekey.DiffInDays(windowStart, e.Date); !ok {
			continue
		}
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		dates = append(dates, e.Date)
	}
	sort.Strings(dates)

	card := StreakQuality{
		EntriesInLast30Days: len(dates),
		ConsistencyScore:    int(math.Floor(float64(len(dates))/StreakWindowDays*100 + 0.5)),
		LongestGapDays:      longestGap(dates, windowStart),
	}

	if card.EntriesInLast30Days < MinStreakEntries {
		card.Status = StatusInsufficient
		card.Summary = streakInsufficient
		return card
	}

	card.Status = StatusReady
	switch {
	case card.ConsistencyScore >= excellentConsistency:
		card.Summary = streakExcellent
	case card.ConsistencyScore >= solidConsistency:
		card.Summary = streakSolid
	default:
		card.Summary = streakLight
	}
	return card
}

// longestGap returns the longest run of days without an entry inside the
// window, counting the days before the first and after the last entry.
// An empty window is one gap of StreakWindowDays.
func longestGap(sortedDates []string, windowStart string) int {
	if len(sortedDates) == 0 {
		return StreakWindowDays
	}

	longest, _ := datekey.DiffInDays(windowStart, sortedDates[0])
	prev := longest
	for _, d := range sortedDates[1:] {
		idx, _ := datekey.DiffInDays(windowStart, d)
		if gap := idx - prev - 1; gap > longest {
			longest = gap
		}
		prev = idx
	}
	if trailing := StreakWindowDays - 1 - prev; trailing > longest {
		longest = trailing
	}
	return longest
}
