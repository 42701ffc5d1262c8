package insights

import (
	"fmt"
	"time"

	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// MinPatternEntries is the mood patterns' sufficiency threshold.
const MinPatternEntries = 6

// PatternThreshold is the average gap that makes a day or time pattern notable.
const PatternThreshold = 0.15

// Time-of-day boundaries. Entries whose createdAt hour cannot be read use
// FallbackHour.
const (
	AfternoonStartHour = 12
	EveningStartHour   = 18
	FallbackHour       = 12
)

// MoodPatterns describes when entries tend to be more positive.
type MoodPatterns struct {
	Status      Status  `json:"status" jsonschema:"enum=ready,enum=insufficient"`
	Summary     string  `json:"summary"`
	DayPattern  string  `json:"dayPattern"`
	TimePattern string  `json:"timePattern"`
	TopMood     *string `json:"topMood" jsonschema:"nullable"`
}

func (c MoodPatterns) CardStatus() Status  { return c.Status }
func (c MoodPatterns) CardSummary() string { return c.Summary }

const (
	dayPatternSimilar       = "Weekday and weekend sentiment are currently similar."
	dayPatternWeekend       = "Weekend entries trend more positive than weekdays."
	dayPatternWeekday       = "Weekday entries trend more positive than weekends."
	timePatternNone         = "No strong time-of-day pattern yet."
	timePatternMorning      = "Morning check-ins trend more positive than evenings."
	timePatternEvening      = "Evening check-ins trend more positive than mornings."
	timePatternBalanced     = "Morning, afternoon, and evening sentiment are fairly balanced."
	moodPatternInsufficient = "Add at least six entries to detect mood patterns."
	moodPatternNoLabels     = "Mood labels are optional. Trends are inferred from entry language."
)

func buildMoodPatterns(entries []entry.Entry, scores sentiment.Map, loc *time.Location) MoodPatterns {
	var weekday, weekend, morning, afternoon, evening []float64
	moods := newCounter()

	for _, e := range entries {
		score := scores.Get(e.ID)

		if datekey.IsWeekend(e.Date) {
			weekend = append(weekend, score)
		} else {
			weekday = append(weekday, score)
		}

		hour, ok := datekey.HourOf(e.CreatedAt, loc)
		if !ok {
			hour = FallbackHour
		}
		switch {
		case hour < AfternoonStartHour:
			morning = append(morning, score)
		case hour < EveningStartHour:
			afternoon = append(afternoon, score)
		default:
			evening = append(evening, score)
		}

		if mood := e.MoodLabel(); mood != "" {
			moods.add(mood)
		}
	}

	card := MoodPatterns{
		DayPattern:  dayPattern(average(weekday), average(weekend)),
		TimePattern: timePattern(average(morning), average(afternoon), average(evening)),
		TopMood:     moods.first(),
	}

	if len(entries) < MinPatternEntries {
		card.Status = StatusInsufficient
		card.Summary = moodPatternInsufficient
		return card
	}

	card.Status = StatusReady
	if card.TopMood != nil {
		card.Summary = fmt.Sprintf("Most frequent mood label: %s.", *card.TopMood)
	} else {
		card.Summary = moodPatternNoLabels
	}
	return card
}

func dayPattern(weekday, weekend *float64) string {
	if weekday == nil || weekend == nil {
		return dayPatternSimilar
	}
	d := *weekend - *weekday
	switch {
	case d >= PatternThreshold:
		return dayPatternWeekend
	case d <= -PatternThreshold:
		return dayPatternWeekday
	}
	return dayPatternSimilar
}

func timePattern(morning, afternoon, evening *float64) string {
	if morning == nil || evening == nil {
		return timePatternNone
	}
	d := *morning - *evening
	switch {
	case d >= PatternThreshold:
		return timePatternMorning
	case d <= -PatternThreshold:
		return timePatternEvening
	case afternoon != nil:
		return timePatternBalanced
	}
	return timePatternNone
}
