package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

func TestDefaultLexicon(t *testing.T) {
	lex := Default()
	stats := lex.Stats()
	if stats.PositiveWords != 13 || stats.NegativeWords != 13 {
		t.Errorf("word sets = %d/%d, want 13/13", stats.PositiveWords, stats.NegativeWords)
	}
	if stats.PositiveMoods != 6 || stats.NegativeMoods != 6 {
		t.Errorf("mood sets = %d/%d, want 6/6", stats.PositiveMoods, stats.NegativeMoods)
	}
	if stats.StopWords != 35 {
		t.Errorf("stop words = %d, want 35", stats.StopWords)
	}

	tests := []struct {
		name string
		fn   func(string) bool
		word string
		want bool
	}{
		{"positive word", lex.IsPositiveWord, "grateful", true},
		{"positive word miss", lex.IsPositiveWord, "content", false},
		{"negative word", lex.IsNegativeWord, "stressful", true},
		{"negative word miss", lex.IsNegativeWord, "angst", false},
		{"positive mood", lex.IsPositiveMood, "energized", true},
		{"positive mood is not a word", lex.IsPositiveWord, "energized", false},
		{"negative mood", lex.IsNegativeMood, "tired", true},
		{"stop word", lex.IsStopWord, "work", true},
		{"stop word miss", lex.IsStopWord, "exercise", false},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.word); got != tt.want {
			t.Errorf("%s(%q) = %v, want %v", tt.name, tt.word, got, tt.want)
		}
	}
}

func TestDefaultWordsIsACopy(t *testing.T) {
	w := DefaultWords()
	w.PositiveWords[0] = "mutated"
	if DefaultWords().PositiveWords[0] == "mutated" {
		t.Error("DefaultWords should return a fresh copy")
	}
	if Default().IsPositiveWord("mutated") {
		t.Error("default lexicon must not change")
	}
}

func TestNewNormalizes(t *testing.T) {
	lex, err := New(Words{PositiveWords: []string{"  Bright ", ""}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !lex.IsPositiveWord("bright") {
		t.Error("expected trimmed, lowercased 'bright'")
	}
	if lex.Stats().PositiveWords != 1 {
		t.Errorf("blank words should be skipped, got %d", lex.Stats().PositiveWords)
	}
}

func TestNewRejectsOverlap(t *testing.T) {
	_, err := New(Words{PositiveWords: []string{"fine"}, NegativeWords: []string{"FINE"}})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("word overlap: err = %v, want ErrInvalidConfig", err)
	}
	_, err = New(Words{PositiveMoods: []string{"meh"}, NegativeMoods: []string{"meh"}})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("mood overlap: err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	doc := "positive_words: [sunny, bright]\nstop_words: [the]\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if !lex.IsPositiveWord("sunny") || lex.IsPositiveWord("great") {
		t.Error("positive_words should replace the defaults")
	}
	if !lex.IsNegativeWord("tired") {
		t.Error("missing negative_words should keep the defaults")
	}
	if !lex.IsStopWord("the") || lex.IsStopWord("work") {
		t.Error("stop_words should replace the defaults")
	}
}

func TestLoadFromYAMLErrors(t *testing.T) {
	if _, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("positive_words: {not: [a list"), 0644)
	if _, err := LoadFromYAML(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("malformed yaml: err = %v, want ErrInvalidConfig", err)
	}
}

func TestWordsSorted(t *testing.T) {
	w := Default().Words()
	for i := 1; i < len(w.StopWords); i++ {
		if w.StopWords[i-1] > w.StopWords[i] {
			t.Fatalf("stop words not sorted at %d: %v", i, w.StopWords)
		}
	}
}
