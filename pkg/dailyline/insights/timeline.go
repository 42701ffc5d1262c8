package insights

import (
	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// MinSentimentEntries is the sentiment timeline's sufficiency threshold.
const MinSentimentEntries = 5

// timelineWeeks is the number of trailing weekly buckets.
const timelineWeeks = 4

var weekLabels = [timelineWeeks]string{"3 weeks ago", "2 weeks ago", "Last week", "This week"}

// TimelinePoint is one weekly bucket of the sentiment timeline.
type TimelinePoint struct {
	Label   string   `json:"label"`
	Average *float64 `json:"average" jsonschema:"nullable"`
	Entries int      `json:"entries"`
}

// SentimentTimeline tracks weekly and month-over-month sentiment.
type SentimentTimeline struct {
	Status               Status          `json:"status" jsonschema:"enum=ready,enum=insufficient"`
	Summary              string          `json:"summary"`
	WeeklyPoints         []TimelinePoint `json:"weeklyPoints"`
	Direction            Direction       `json:"direction" jsonschema:"enum=up,enum=down,enum=no-change"`
	MonthlyDelta         float64         `json:"monthlyDelta"`
	CurrentMonthAverage  *float64        `json:"currentMonthAverage" jsonschema:"nullable"`
	PreviousMonthAverage *float64        `json:"previousMonthAverage" jsonschema:"nullable"`
}

func (c SentimentTimeline) CardStatus() Status  { return c.Status }
func (c SentimentTimeline) CardSummary() string { return c.Summary }

const (
	timelineInsufficient   = "Add at least five entries to unlock sentiment trends."
	timelineSingleMonth    = "Tracking this month now. Add entries across two months for period comparison."
	timelineTrendingUp     = "Sentiment is trending upward versus last month."
	timelineTrendingDown   = "Sentiment is trending lower versus last month."
	timelineTrendingSteady = "Sentiment is steady versus last month."
)

func buildSentimentTimeline(entries []entry.Entry, scores sentiment.Map, todayKey string) SentimentTimeline {
	currentMonth := datekey.MonthKey(todayKey)
	previousMonth := datekey.PreviousMonthKey(currentMonth)

	var buckets [timelineWeeks][]float64
	var currentScores, previousScores []float64

	for _, e := range entries {
		score := scores.Get(e.ID)

		daysAgo, ok := datekey.DiffInDays(e.Date, todayKey)
		if ok && daysAgo >= 0 && daysAgo < timelineWeeks*7 {
			bucket := timelineWeeks - 1 - daysAgo/7
			buckets[bucket] = append(buckets[bucket], score)
		}

		switch datekey.MonthKey(e.Date) {
		case currentMonth:
			currentScores = append(currentScores, score)
		case previousMonth:
			previousScores = append(previousScores, score)
		}
	}

	card := SentimentTimeline{
		WeeklyPoints:         make([]TimelinePoint, timelineWeeks),
		CurrentMonthAverage:  average(currentScores),
		PreviousMonthAverage: average(previousScores),
	}
	card.MonthlyDelta = delta(card.CurrentMonthAverage, card.PreviousMonthAverage)
	card.Direction = ResolveTrendDirection(card.MonthlyDelta)

	for i, label := range weekLabels {
		card.WeeklyPoints[i] = TimelinePoint{
			Label:   label,
			Average: roundPtr(average(buckets[i])),
			Entries: len(buckets[i]),
		}
	}

	if len(entries) < MinSentimentEntries {
		card.Status = StatusInsufficient
		card.Summary = timelineInsufficient
		return card
	}

	card.Status = StatusReady
	switch {
	case card.CurrentMonthAverage == nil || card.PreviousMonthAverage == nil:
		card.Summary = timelineSingleMonth
	case card.Direction == DirectionUp:
		card.Summary = timelineTrendingUp
	case card.Direction == DirectionDown:
		card.Summary = timelineTrendingDown
	default:
		card.Summary = timelineTrendingSteady
	}
	return card
}
