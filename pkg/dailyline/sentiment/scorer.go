// Package sentiment maps journal entries to bounded lexical sentiment scores.
package sentiment

import (
	"math"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/ingest"
	"github.com/cognicore/dailyline/pkg/dailyline/lexicon"
)

// Score weights and bounds.
const (
	WordWeight = 0.2
	MoodWeight = 0.35
	MinScore   = -1.0
	MaxScore   = 1.0
)

// Map holds one score per entry id for the duration of a report build.
type Map map[string]float64

// Get returns the score for id, or 0 when the entry was never scored.
func (m Map) Get(id string) float64 {
	return m[id]
}

// Scorer scores entries against a lexicon.
type Scorer struct {
	lexicon *lexicon.Lexicon
}

// New creates a scorer. A nil lexicon means lexicon.Default().
func New(lex *lexicon.Lexicon) *Scorer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Scorer{lexicon: lex}
}

// Score returns the entry's sentiment in [-1, 1], rounded to 2 decimals.
// Each positive word token adds WordWeight and each negative one subtracts
// it; a positive or negative mood label adds or subtracts MoodWeight.
func (s *Scorer) Score(e entry.Entry) float64 {
	score := 0.0

	for _, tok := range ingest.Tokenize(e.Text) {
		if s.lexicon.IsPositiveWord(tok) {
			score += WordWeight
		}
		if s.lexicon.IsNegativeWord(tok) {
			score -= WordWeight
		}
	}

	if mood := e.MoodLabel(); mood != "" {
		if s.lexicon.IsPositiveMood(mood) {
			score += MoodWeight
		}
		if s.lexicon.IsNegativeMood(mood) {
			score -= MoodWeight
		}
	}

	return Round(Clamp(score, MinScore, MaxScore), 2)
}

// ScoreAll scores every entry once. When ids repeat, the later entry wins.
func (s *Scorer) ScoreAll(entries []entry.Entry) Map {
	m := make(Map, len(entries))
	for _, e := range entries {
		m[e.ID] = s.Score(e)
	}
	return m
}

// Round rounds v to the given number of decimal places. Halves round
// toward positive infinity so -0.125 becomes -0.12.
func Round(v float64, digits int) float64 {
	factor := math.Pow(10, float64(digits))
	return math.Floor(v*factor+0.5) / factor
}

// Clamp limits v to [min, max].
func Clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
