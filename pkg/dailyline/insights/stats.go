package insights

import (
	"sort"

	"github.com/cognicore/dailyline/pkg/dailyline/sentiment"
)

// TrendThreshold is the smallest delta that counts as a change in direction.
const TrendThreshold = 0.05

// ResolveTrendDirection classifies a sentiment delta.
func ResolveTrendDirection(delta float64) Direction {
	if delta >= TrendThreshold {
		return DirectionUp
	}
	if delta <= -TrendThreshold {
		return DirectionDown
	}
	return DirectionNoChange
}

// average returns the mean of values, or nil when there are none.
func average(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	avg := sum / float64(len(values))
	return &avg
}

// roundPtr rounds a nullable value to 2 decimals.
func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := sentiment.Round(*v, 2)
	return &r
}

// delta returns round(current - previous, 2), or 0 when either side is missing.
func delta(current, previous *float64) float64 {
	if current == nil || previous == nil {
		return 0
	}
	return sentiment.Round(*current-*previous, 2)
}

// counter counts keys and remembers the order each key was first seen.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// first returns the key with the highest count. Ties go to the key seen first.
func (c *counter) first() *string {
	var best *string
	bestCount := 0
	for i, key := range c.order {
		if n := c.counts[key]; n > bestCount {
			best = &c.order[i]
			bestCount = n
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}

// MinRecurringCount is how often a theme must appear to count as recurring.
const MinRecurringCount = 2

// top returns up to limit keys seen at least MinRecurringCount times,
// ordered by count descending and then alphabetically.
func (c *counter) top(limit int) []string {
	keys := make([]string, 0, len(c.order))
	for _, key := range c.order {
		if c.counts[key] >= MinRecurringCount {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if c.counts[keys[i]] != c.counts[keys[j]] {
			return c.counts[keys[i]] > c.counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys
}

// topOne is top(1) as a nullable string.
func (c *counter) topOne() *string {
	keys := c.top(1)
	if len(keys) == 0 {
		return nil
	}
	return &keys[0]
}
