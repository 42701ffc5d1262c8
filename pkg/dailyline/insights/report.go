// Package insights builds the AI insights report: seven independent cards
// derived from a user's journal entries.
//
// Build is a pure function of its inputs. Entries are sorted and scored once
// per call and the resulting sentiment map is handed to every aggregator, so
// two calls with equal input always yield byte-identical reports.
package insights

import (
	"fmt"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/zeebo/xxh3"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/ingest"
	"github.com/cognicore/dailyline/pkg/dailyline/lexicon"
	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// Status tells whether a card had enough data to be trusted.
type Status string

const (
	StatusReady        Status = "ready"
	StatusInsufficient Status = "insufficient"
)

// Direction is a sentiment trend.
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionNoChange Direction = "no-change"
)

// Card names as they appear in the encoded report.
const (
	CardSentimentTimeline = "sentimentTimeline"
	CardMoodPatterns      = "moodPatterns"
	CardThemeMining       = "themeMining"
	CardStreakQuality     = "streakQuality"
	CardEarlyWarning      = "earlyWarning"
	CardWeeklyReflection  = "weeklyReflection"
	CardComparePeriods    = "comparePeriods"
)

// CardNames lists every card in report order.
var CardNames = []string{
	CardSentimentTimeline,
	CardMoodPatterns,
	CardThemeMining,
	CardStreakQuality,
	CardEarlyWarning,
	CardWeeklyReflection,
	CardComparePeriods,
}

// Card is implemented by every report card.
type Card interface {
	CardStatus() Status
	CardSummary() string
}

// Report is the full set of insight cards for one reference day.
type Report struct {
	SentimentTimeline SentimentTimeline `json:"sentimentTimeline"`
	MoodPatterns      MoodPatterns      `json:"moodPatterns"`
	ThemeMining       ThemeMining       `json:"themeMining"`
	StreakQuality     StreakQuality     `json:"streakQuality"`
	EarlyWarning      EarlyWarning      `json:"earlyWarning"`
	WeeklyReflection  WeeklyReflection  `json:"weeklyReflection"`
	ComparePeriods    ComparePeriods    `json:"comparePeriods"`
}

// NamedCard pairs a card with its encoded name.
type NamedCard struct {
	Name string
	Card Card
}

// Cards returns the report's cards in CardNames order.
func (r Report) Cards() []NamedCard {
	return []NamedCard{
		{CardSentimentTimeline, r.SentimentTimeline},
		{CardMoodPatterns, r.MoodPatterns},
		{CardThemeMining, r.ThemeMining},
		{CardStreakQuality, r.StreakQuality},
		{CardEarlyWarning, r.EarlyWarning},
		{CardWeeklyReflection, r.WeeklyReflection},
		{CardComparePeriods, r.ComparePeriods},
	}
}

var reportJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalCanonical encodes the report as compact JSON.
func (r Report) MarshalCanonical() ([]byte, error) {
	return reportJSON.Marshal(r)
}

// Fingerprint returns a stable 64-bit hash of the encoded report as 16 hex digits.
func (r Report) Fingerprint() string {
	data, err := r.MarshalCanonical()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}

// Builder assembles reports with a fixed lexicon.
type Builder struct {
	scorer *sentiment.Scorer
	themes *ingest.ThemeExtractor

	// Location, when set, is the zone createdAt hours are read in for mood
	// patterns. Nil reads each timestamp in its own offset.
	Location *time.Location
}

// NewBuilder creates a builder. A nil lexicon means lexicon.Default().
func NewBuilder(lex *lexicon.Lexicon) *Builder {
	return &Builder{
		scorer: sentiment.New(lex),
		themes: ingest.NewThemeExtractor(lex),
	}
}

var defaultBuilder = NewBuilder(nil)

// Build computes the report for entries as of todayKey with the default lexicon.
func Build(entries []entry.Entry, todayKey string) Report {
	return defaultBuilder.Build(entries, todayKey)
}

// Build computes the report for entries as of todayKey ("YYYY-MM-DD").
// The input slice is not modified.
func (b *Builder) Build(entries []entry.Entry, todayKey string) Report {
	sorted := make([]entry.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	scores := b.scorer.ScoreAll(sorted)

	return Report{
		SentimentTimeline: buildSentimentTimeline(sorted, scores, todayKey),
		MoodPatterns:      buildMoodPatterns(sorted, scores, b.Location),
		ThemeMining:       buildThemeMining(sorted, scores, b.themes),
		StreakQuality:     buildStreakQuality(sorted, todayKey),
		EarlyWarning:      buildEarlyWarning(sorted, scores),
		WeeklyReflection:  buildWeeklyReflection(sorted, scores, b.themes, todayKey),
		ComparePeriods:    buildComparePeriods(sorted, scores, b.themes, todayKey),
	}
}
