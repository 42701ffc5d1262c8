// Package datekey implements calendar arithmetic on "YYYY-MM-DD" day keys.
//
// All arithmetic is done on calendar dates pinned to UTC midnight, so day
// differences never drift across daylight-saving transitions.
package datekey

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// Layout is the canonical day key format.
const Layout = "2006-01-02"

// MonthLayout is the canonical month key format.
const MonthLayout = "2006-01"

// Parse converts a day key into UTC midnight of that calendar day.
// Components are parsed leniently ("2026-2-3" is accepted) and normalized
// the way time.Date normalizes out-of-range values.
func Parse(key string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", internalerr.ErrInvalidDateKey, key)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", internalerr.ErrInvalidDateKey, key)
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC), nil
}

// Valid reports whether key is a well-formed, already-normalized day key.
func Valid(key string) bool {
	t, err := time.Parse(Layout, key)
	return err == nil && t.Format(Layout) == key
}

// Format returns the day key of t's calendar date in t's own location.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current day key in loc. A nil loc means UTC.
func Today(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return Format(time.Now().In(loc))
}

// AddDays shifts key by n calendar days. Unparseable keys are returned unchanged.
func AddDays(key string, n int) string {
	t, err := Parse(key)
	if err != nil {
		return key
	}
	return Format(t.AddDate(0, 0, n))
}

// DiffInDays returns the number of calendar days from "from" to "to".
// It is negative when "to" precedes "from". ok is false if either key is
// unparseable.
func DiffInDays(from, to string) (days int, ok bool) {
	a, err := Parse(from)
	if err != nil {
		return 0, false
	}
	b, err := Parse(to)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// MonthKey returns the "YYYY-MM" prefix of a day key.
func MonthKey(key string) string {
	if len(key) < 7 {
		return key
	}
	return key[:7]
}

// PreviousMonthKey returns the month immediately before monthKey
// ("2026-01" -> "2025-12"). It returns "" for malformed input.
func PreviousMonthKey(monthKey string) string {
	parts := strings.Split(monthKey, "-")
	if len(parts) < 2 {
		return ""
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return ""
	}
	return time.Date(year, time.Month(month-1), 1, 0, 0, 0, 0, time.UTC).Format(MonthLayout)
}

// Weekday returns the day of week for key. Unparseable keys report Monday,
// the weekday of the zero time.
func Weekday(key string) time.Weekday {
	t, _ := Parse(key)
	return t.Weekday()
}

// IsWeekend reports whether key falls on a Saturday or Sunday.
func IsWeekend(key string) bool {
	if _, err := Parse(key); err != nil {
		return false
	}
	switch Weekday(key) {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	Layout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp in any of the layouts
// entries are known to carry. Timestamps without an offset are read as UTC.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HourOf returns the clock hour of ts. With a nil loc the hour is read in
// the timestamp's own offset; otherwise ts is converted to loc first.
func HourOf(ts string, loc *time.Location) (int, bool) {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return 0, false
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Hour(), true
}
