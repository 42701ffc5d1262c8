// Package entry defines the journal records and user settings shared by the
// insights engine, the stores and the command line tools.
package entry

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// Entry is one calendar-day journal record.
// CreatedAt and UpdatedAt are kept as the raw ISO-8601 strings the store
// holds so malformed values reach the engine's fallback path intact.
type Entry struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Text      string   `json:"text"`
	Mood      *string  `json:"mood"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// MoodLabel returns the trimmed, lowercased mood or "" when absent.
func (e Entry) MoodLabel() string {
	if e.Mood == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*e.Mood))
}

// Validate checks the fields the stores rely on.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: entry id is empty", internalerr.ErrInvalidInput)
	}
	if !datekey.Valid(e.Date) {
		return fmt.Errorf("%w: entry %s has date %q", internalerr.ErrInvalidDateKey, e.ID, e.Date)
	}
	return nil
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	out := e
	if e.Mood != nil {
		m := *e.Mood
		out.Mood = &m
	}
	if e.Tags != nil {
		out.Tags = make([]string, len(e.Tags))
		copy(out.Tags, e.Tags)
	}
	return out
}

// Editable reports whether an entry dated date may still be changed on
// todayKey. Only today's entry is editable.
func Editable(date, todayKey string) bool {
	return date == todayKey
}

// Mood returns a pointer to label, or nil for an empty label.
func Mood(label string) *string {
	if strings.TrimSpace(label) == "" {
		return nil
	}
	return &label
}

// TimestampLayout is the format new timestamps are written in.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t as an ISO-8601 UTC timestamp with milliseconds.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a new lexicographically sortable entry id.
func NewID(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
