package lexicon

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// Lexicon holds the word and mood sets that drive sentiment scoring and
// theme extraction:
// - positive/negative words: scored per token in entry text
// - positive/negative moods: scored once per entry mood label
// - stop words: excluded from word themes
//
// A Lexicon is immutable once built and safe for concurrent use.
type Lexicon struct {
	positiveWords map[string]struct{}
	negativeWords map[string]struct{}
	positiveMoods map[string]struct{}
	negativeMoods map[string]struct{}
	stopWords     map[string]struct{}
}

// Words is the serializable form of a lexicon.
type Words struct {
	PositiveWords []string `yaml:"positive_words"`
	NegativeWords []string `yaml:"negative_words"`
	PositiveMoods []string `yaml:"positive_moods"`
	NegativeMoods []string `yaml:"negative_moods"`
	StopWords     []string `yaml:"stop_words"`
}

// DefaultWords returns a fresh copy of the built-in word lists.
func DefaultWords() Words {
	return Words{
		PositiveWords: []string{
			"calm", "clear", "focused", "good", "great", "grateful", "happy",
			"joy", "productive", "relaxed", "steady", "strong", "win",
		},
		NegativeWords: []string{
			"angry", "anxious", "drained", "frustrated", "hard", "low", "overwhelmed",
			"sad", "stressed", "stressful", "tired", "upset", "worry",
		},
		PositiveMoods: []string{"calm", "content", "energized", "good", "great", "happy"},
		NegativeMoods: []string{"angry", "anxious", "low", "sad", "stressed", "tired"},
		StopWords: []string{
			"about", "after", "again", "almost", "also", "and", "another", "because",
			"been", "before", "being", "between", "from", "have", "into", "just",
			"like", "many", "more", "most", "over", "really", "some", "that",
			"their", "them", "then", "there", "these", "they", "this", "today",
			"very", "with", "work",
		},
	}
}

var defaultLexicon = mustNew(DefaultWords())

// Default returns the built-in lexicon. The returned value is shared and read-only.
func Default() *Lexicon {
	return defaultLexicon
}

func mustNew(w Words) *Lexicon {
	lex, err := New(w)
	if err != nil {
		panic(err)
	}
	return lex
}

// New builds a lexicon from word lists. Words are trimmed and lowercased.
// A word may not be both positive and negative, and neither may a mood.
func New(w Words) (*Lexicon, error) {
	lex := &Lexicon{
		positiveWords: toSet(w.PositiveWords),
		negativeWords: toSet(w.NegativeWords),
		positiveMoods: toSet(w.PositiveMoods),
		negativeMoods: toSet(w.NegativeMoods),
		stopWords:     toSet(w.StopWords),
	}
	if both := intersect(lex.positiveWords, lex.negativeWords); len(both) > 0 {
		return nil, fmt.Errorf("%w: words both positive and negative: %s",
			internalerr.ErrInvalidConfig, strings.Join(both, ", "))
	}
	if both := intersect(lex.positiveMoods, lex.negativeMoods); len(both) > 0 {
		return nil, fmt.Errorf("%w: moods both positive and negative: %s",
			internalerr.ErrInvalidConfig, strings.Join(both, ", "))
	}
	return lex, nil
}

// LoadFromYAML loads a lexicon from a YAML file.
//
// Expected format:
//
//	positive_words: [calm, clear, focused]
//	negative_words: [anxious, drained]
//	positive_moods: [calm, content]
//	negative_moods: [low, sad]
//	stop_words: [about, after]
//
// Sections that are missing keep the built-in lists.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Words
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse lexicon %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	w := DefaultWords()
	if doc.PositiveWords != nil {
		w.PositiveWords = doc.PositiveWords
	}
	if doc.NegativeWords != nil {
		w.NegativeWords = doc.NegativeWords
	}
	if doc.PositiveMoods != nil {
		w.PositiveMoods = doc.PositiveMoods
	}
	if doc.NegativeMoods != nil {
		w.NegativeMoods = doc.NegativeMoods
	}
	if doc.StopWords != nil {
		w.StopWords = doc.StopWords
	}
	return New(w)
}

// IsPositiveWord reports whether token is a positive text word.
func (l *Lexicon) IsPositiveWord(token string) bool { return has(l.positiveWords, token) }

// IsNegativeWord reports whether token is a negative text word.
func (l *Lexicon) IsNegativeWord(token string) bool { return has(l.negativeWords, token) }

// IsPositiveMood reports whether a normalized mood label is positive.
func (l *Lexicon) IsPositiveMood(mood string) bool { return has(l.positiveMoods, mood) }

// IsNegativeMood reports whether a normalized mood label is negative.
func (l *Lexicon) IsNegativeMood(mood string) bool { return has(l.negativeMoods, mood) }

// IsStopWord reports whether token is excluded from word themes.
func (l *Lexicon) IsStopWord(token string) bool { return has(l.stopWords, token) }

// Words returns the lexicon's lists, each sorted.
func (l *Lexicon) Words() Words {
	return Words{
		PositiveWords: sortedKeys(l.positiveWords),
		NegativeWords: sortedKeys(l.negativeWords),
		PositiveMoods: sortedKeys(l.positiveMoods),
		NegativeMoods: sortedKeys(l.negativeMoods),
		StopWords:     sortedKeys(l.stopWords),
	}
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	return LexiconStats{
		PositiveWords: len(l.positiveWords),
		NegativeWords: len(l.negativeWords),
		PositiveMoods: len(l.positiveMoods),
		NegativeMoods: len(l.negativeMoods),
		StopWords:     len(l.stopWords),
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	PositiveWords int
	NegativeWords int
	PositiveMoods int
	NegativeMoods int
	StopWords     int
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}

func intersect(a, b map[string]struct{}) []string {
	var out []string
	for w := range a {
		if _, ok := b[w]; ok {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
