package ingest

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/lexicon"
)

// Theme length floors. Tag length is counted in UTF-16 code units.
const (
	MinTagThemeLen  = 3
	MinWordThemeLen = 4
)

// Tokenize lowercases text and splits it on every run of characters outside
// [a-z0-9]. Tokens keep their order and are not deduplicated.
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// ThemeExtractor derives recurring-topic candidates from entries.
type ThemeExtractor struct {
	lexicon *lexicon.Lexicon
}

// NewThemeExtractor creates an extractor that filters word themes through
// the lexicon's stop words. A nil lexicon means lexicon.Default().
func NewThemeExtractor(lex *lexicon.Lexicon) *ThemeExtractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &ThemeExtractor{lexicon: lex}
}

// Themes returns the deduplicated themes of one entry: every tag that is at
// least MinTagThemeLen long after trimming and lowercasing, plus every text
// token of at least MinWordThemeLen that is not a stop word. The result is
// sorted so callers iterate it in a reproducible order.
func (x *ThemeExtractor) Themes(e entry.Entry) []string {
	seen := make(map[string]struct{})

	for _, tag := range e.Tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if tagLen(normalized) >= MinTagThemeLen {
			seen[normalized] = struct{}{}
		}
	}

	for _, tok := range Tokenize(e.Text) {
		if len(tok) < MinWordThemeLen || x.lexicon.IsStopWord(tok) {
			continue
		}
		seen[tok] = struct{}{}
	}

	themes := make([]string, 0, len(seen))
	for theme := range seen {
		themes = append(themes, theme)
	}
	sort.Strings(themes)
	return themes
}

func tagLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
