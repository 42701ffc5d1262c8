package insights

import (
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// MinWarningEntries is the early warning sufficiency threshold.
const MinWarningEntries = 6

// Early warning window and trigger values.
const (
	warningWindow      = 10
	warningAverageSpan = 3
	NegativeRunScore   = -0.35
	NegativeRunLength  = 3
	LowRecentAverage   = -0.25
	SharpDropDelta     = -0.2
)

// WarningLevel is the early warning outcome.
type WarningLevel string

const (
	LevelStable WarningLevel = "stable"
	LevelWatch  WarningLevel = "watch"
)

// EarlyWarning flags a sustained run of low-sentiment entries.
type EarlyWarning struct {
	Status          Status       `json:"status" jsonschema:"enum=ready,enum=insufficient"`
	Summary         string       `json:"summary"`
	Level           WarningLevel `json:"level" jsonschema:"enum=stable,enum=watch"`
	RecentAverage   *float64     `json:"recentAverage" jsonschema:"nullable"`
	PreviousAverage *float64     `json:"previousAverage" jsonschema:"nullable"`
	Prompt          string       `json:"prompt"`
}

func (c EarlyWarning) CardStatus() Status  { return c.Status }
func (c EarlyWarning) CardSummary() string { return c.Summary }

const (
	warningInsufficient       = "Add at least six entries for trend-window checks."
	warningInsufficientPrompt = "Keep writing. Trend prompts appear when enough data is available."
	warningWatch              = "Recent entries show a sustained lower trend. Consider a short reset and reflection."
	warningWatchPrompt        = "What felt heaviest this week, and what is one small support step for tomorrow?"
	warningStable             = "No sustained low-trend warning in recent entries."
	warningStablePrompt       = "What routine is helping you stay steady lately?"
)

// buildEarlyWarning expects entries sorted by date.
func buildEarlyWarning(entries []entry.Entry, scores sentiment.Map) EarlyWarning {
	recent := entries
	if len(recent) > warningWindow {
		recent = recent[len(recent)-warningWindow:]
	}

	values := make([]float64, len(recent))
	for i, e := range recent {
		values[i] = scores.Get(e.ID)
	}

	n := len(values)
	recentStart := max(n-warningAverageSpan, 0)
	previousStart := max(n-2*warningAverageSpan, 0)

	card := EarlyWarning{
		RecentAverage:   average(values[recentStart:]),
		PreviousAverage: average(values[previousStart:recentStart]),
	}

	run, longestRun := 0, 0
	for _, v := range values {
		if v <= NegativeRunScore {
			run++
			longestRun = max(longestRun, run)
		} else {
			run = 0
		}
	}

	signal := longestRun >= NegativeRunLength &&
		card.RecentAverage != nil &&
		card.PreviousAverage != nil &&
		(*card.RecentAverage <= LowRecentAverage || *card.RecentAverage-*card.PreviousAverage <= SharpDropDelta)

	card.Level = LevelStable
	if len(entries) < MinWarningEntries {
		card.Status = StatusInsufficient
		card.Summary = warningInsufficient
		card.Prompt = warningInsufficientPrompt
		return card
	}

	card.Status = StatusReady
	if signal {
		card.Level = LevelWatch
		card.Summary = warningWatch
		card.Prompt = warningWatchPrompt
		return card
	}
	card.Summary = warningStable
	card.Prompt = warningStablePrompt
	return card
}
