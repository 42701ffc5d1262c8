package insights

import (
	"fmt"
	"strings"

	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/ingest"
	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// MinWeeklyEntries is the weekly reflection sufficiency threshold.
const MinWeeklyEntries = 3

// Weekly reflection parameters.
const (
	WeeklyWindowDays  = 7
	WeeklyThemeLimit  = 2
	PositiveToneFloor = 0.15
	ChallengingCeil   = -0.15
)

// Tone classifies the average sentiment of a week.
type Tone string

const (
	TonePositive    Tone = "positive"
	ToneChallenging Tone = "challenging"
	ToneBalanced    Tone = "balanced"
)

// WeeklyReflection summarizes the trailing seven days.
type WeeklyReflection struct {
	Status    Status   `json:"status" jsonschema:"enum=ready,enum=insufficient"`
	Summary   string   `json:"summary"`
	Wins      []string `json:"wins"`
	Stressors []string `json:"stressors"`
	Prompt    string   `json:"prompt"`
}

func (c WeeklyReflection) CardStatus() Status  { return c.Status }
func (c WeeklyReflection) CardSummary() string { return c.Summary }

const (
	weeklyInsufficient       = "Log at least three entries this week for reflection summaries."
	weeklyInsufficientPrompt = "What is one sentence you want to remember from this week?"
)

var tonePrompts = map[Tone]string{
	TonePositive:    "What helped this week go well, and how can you repeat it next week?",
	ToneChallenging: "Which moment felt most draining, and what boundary could reduce it next week?",
	ToneBalanced:    "What one change would make next week feel smoother?",
}

func resolveTone(avg float64) Tone {
	switch {
	case avg >= PositiveToneFloor:
		return TonePositive
	case avg <= ChallengingCeil:
		return ToneChallenging
	default:
		return ToneBalanced
	}
}

func buildWeeklyReflection(entries []entry.Entry, scores sentiment.Map, themes *ingest.ThemeExtractor, todayKey string) WeeklyReflection {
	weekStart := datekey.AddDays(todayKey, -(WeeklyWindowDays - 1))

	wins := newCounter()
	stressors := newCounter()
	var weekScores []float64

	for _, e := range entries {
		if e.Date < weekStart || e.Date > todayKey {
			continue
		}
		score := scores.Get(e.ID)
		weekScores = append(weekScores, score)

		for _, theme := range themes.Themes(e) {
			if score >= PositiveThemeFloor {
				wins.add(theme)
			}
			if score <= ChallengingThemeFloor {
				stressors.add(theme)
			}
		}
	}

	card := WeeklyReflection{
		Wins:      wins.top(WeeklyThemeLimit),
		Stressors: stressors.top(WeeklyThemeLimit),
	}

	if len(weekScores) < MinWeeklyEntries {
		card.Status = StatusInsufficient
		card.Summary = weeklyInsufficient
		card.Prompt = weeklyInsufficientPrompt
		return card
	}

	tone := resolveTone(*average(weekScores))

	parts := []string{fmt.Sprintf("You logged %d entries this week with a %s tone.", len(weekScores), tone)}
	if len(card.Wins) > 0 {
		parts = append(parts, fmt.Sprintf("Wins showed up around %s.", strings.Join(card.Wins, " and ")))
	}
	if len(card.Stressors) > 0 {
		parts = append(parts, fmt.Sprintf("Pressure points appeared around %s.", strings.Join(card.Stressors, " and ")))
	}

	card.Status = StatusReady
	card.Summary = strings.Join(parts, " ")
	card.Prompt = tonePrompts[tone]
	return card
}
