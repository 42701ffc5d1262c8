package insights

import (
	"fmt"
	"strings"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/ingest"
	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// MinThemeEntries is the theme mining sufficiency threshold.
const MinThemeEntries = 8

// Theme mining limits.
const (
	TopThemeLimit         = 3
	PositiveThemeFloor    = 0.1
	ChallengingThemeFloor = -0.1
)

// ThemeMining lists recurring themes and the ones tied to the best and
// worst days.
type ThemeMining struct {
	Status           Status   `json:"status" jsonschema:"enum=ready,enum=insufficient"`
	Summary          string   `json:"summary"`
	TopThemes        []string `json:"topThemes"`
	PositiveTheme    *string  `json:"positiveTheme" jsonschema:"nullable"`
	ChallengingTheme *string  `json:"challengingTheme" jsonschema:"nullable"`
}

func (c ThemeMining) CardStatus() Status  { return c.Status }
func (c ThemeMining) CardSummary() string { return c.Summary }

const themeMiningInsufficient = "Add more entries and repeated themes to unlock theme mining."

func buildThemeMining(entries []entry.Entry, scores sentiment.Map, themes *ingest.ThemeExtractor) ThemeMining {
	counts := newCounter()
	themeScores := make(map[string][]float64)

	for _, e := range entries {
		score := scores.Get(e.ID)
		for _, theme := range themes.Themes(e) {
			counts.add(theme)
			themeScores[theme] = append(themeScores[theme], score)
		}
	}

	card := ThemeMining{TopThemes: counts.top(TopThemeLimit)}

	if len(entries) < MinThemeEntries || len(card.TopThemes) == 0 {
		card.Status = StatusInsufficient
		card.Summary = themeMiningInsufficient
		return card
	}

	var positive, challenging *string
	var positiveAvg, challengingAvg float64

	for i, theme := range counts.order {
		values := themeScores[theme]
		if len(values) < MinRecurringCount {
			continue
		}
		avg := *average(values)

		if avg >= PositiveThemeFloor && (positive == nil || avg > positiveAvg) {
			positive, positiveAvg = &counts.order[i], avg
		}
		if avg <= ChallengingThemeFloor && (challenging == nil || avg < challengingAvg) {
			challenging, challengingAvg = &counts.order[i], avg
		}
	}

	card.Status = StatusReady
	card.PositiveTheme = cloneString(positive)
	card.ChallengingTheme = cloneString(challenging)
	card.Summary = fmt.Sprintf("Recurring themes: %s.", strings.Join(card.TopThemes, ", "))
	return card
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
