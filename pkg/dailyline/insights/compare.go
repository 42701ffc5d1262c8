package insights

import (
	"fmt"

	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/ingest"
	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// MinCompareEntries is how many entries each month needs before the
// months are compared.
const MinCompareEntries = 3

// ComparePeriods compares the current calendar month with the previous one.
type ComparePeriods struct {
	Status           Status    `json:"status" jsonschema:"enum=ready,enum=insufficient"`
	Summary          string    `json:"summary"`
	Direction        Direction `json:"direction" jsonschema:"enum=up,enum=down,enum=no-change"`
	SentimentDelta   float64   `json:"sentimentDelta"`
	TopCurrentTheme  *string   `json:"topCurrentTheme" jsonschema:"nullable"`
	TopPreviousTheme *string   `json:"topPreviousTheme" jsonschema:"nullable"`
}

func (c ComparePeriods) CardStatus() Status  { return c.Status }
func (c ComparePeriods) CardSummary() string { return c.Summary }

const (
	compareInsufficient  = "Need at least three entries in both current and previous months to compare periods."
	compareThemesPending = "Theme deltas are still stabilizing."
)

// monthSlice holds the scores and theme counts of one calendar month.
type monthSlice struct {
	scores []float64
	themes *counter
}

func (m *monthSlice) add(e entry.Entry, score float64, themes *ingest.ThemeExtractor) {
	m.scores = append(m.scores, score)
	for _, theme := range themes.Themes(e) {
		m.themes.add(theme)
	}
}

func buildComparePeriods(entries []entry.Entry, scores sentiment.Map, themes *ingest.ThemeExtractor, todayKey string) ComparePeriods {
	currentKey := datekey.MonthKey(todayKey)
	previousKey := datekey.PreviousMonthKey(currentKey)

	current := &monthSlice{themes: newCounter()}
	previous := &monthSlice{themes: newCounter()}

	for _, e := range entries {
		switch datekey.MonthKey(e.Date) {
		case currentKey:
			current.add(e, scores.Get(e.ID), themes)
		case previousKey:
			previous.add(e, scores.Get(e.ID), themes)
		}
	}

	card := ComparePeriods{
		SentimentDelta:   delta(average(current.scores), average(previous.scores)),
		TopCurrentTheme:  current.themes.topOne(),
		TopPreviousTheme: previous.themes.topOne(),
	}
	card.Direction = ResolveTrendDirection(card.SentimentDelta)

	if len(current.scores) < MinCompareEntries || len(previous.scores) < MinCompareEntries {
		card.Status = StatusInsufficient
		card.Summary = compareInsufficient
		return card
	}

	trend := "flat"
	switch card.Direction {
	case DirectionUp:
		trend = "up"
	case DirectionDown:
		trend = "down"
	}

	themeCopy := compareThemesPending
	if card.TopCurrentTheme != nil && card.TopPreviousTheme != nil {
		themeCopy = fmt.Sprintf("Top themes shifted from %s to %s.", *card.TopPreviousTheme, *card.TopCurrentTheme)
	}

	card.Status = StatusReady
	card.Summary = fmt.Sprintf("Month-over-month sentiment is %s. %s", trend, themeCopy)
	return card
}
