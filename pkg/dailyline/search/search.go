// Package search filters journal entries by text and date.
package search

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/ingest"
)

// MinFuzzyQueryLen is the shortest query that is matched with typo tolerance.
const MinFuzzyQueryLen = 5

// MaxFuzzyDistance is the largest edit distance a fuzzy token match allows.
const MaxFuzzyDistance = 1

// Options tunes Filter.
type Options struct {
	// Fuzzy also matches text tokens within MaxFuzzyDistance edits of a
	// single-word query of at least MinFuzzyQueryLen characters.
	Fuzzy bool
}

// Filter returns the entries whose text contains query, ignoring case and
// surrounding whitespace. A non-empty dateFilter keeps only entries on that
// day. An empty query matches every entry. Input order is preserved.
func Filter(entries []entry.Entry, query, dateFilter string) []entry.Entry {
	return FilterWithOptions(entries, query, dateFilter, Options{})
}

// FilterWithOptions is Filter with extra matching options.
func FilterWithOptions(entries []entry.Entry, query, dateFilter string, opts Options) []entry.Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	fuzzy := opts.Fuzzy && len(q) >= MinFuzzyQueryLen && !strings.ContainsAny(q, " \t")

	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if dateFilter != "" && e.Date != dateFilter {
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(e.Text), q) || (fuzzy && fuzzyMatch(e.Text, q)) {
			out = append(out, e)
		}
	}
	return out
}

func fuzzyMatch(text, q string) bool {
	for _, tok := range ingest.Tokenize(text) {
		if abs(len(tok)-len(q)) > MaxFuzzyDistance {
			continue
		}
		if levenshtein.ComputeDistance(tok, q) <= MaxFuzzyDistance {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
