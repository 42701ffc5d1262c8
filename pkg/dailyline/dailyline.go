// Package dailyline ties the entry store, the insights builder and the
// feature access policy together.
package dailyline

import (
	"context"
	"fmt"
	"time"

	"github.com/cognicore/dailyline/pkg/dailyline/access"
	"github.com/cognicore/dailyline/pkg/dailyline/datekey"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/export"
	"github.com/cognicore/dailyline/pkg/dailyline/insights"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
	"github.com/cognicore/dailyline/pkg/dailyline/search"
	"github.com/cognicore/dailyline/pkg/dailyline/store"
	"github.com/cognicore/dailyline/pkg/dailyline/streak"
)

// Journal is the main facade over a user's journal.
type Journal struct {
	store   store.Store
	builder *insights.Builder
	now     func() time.Time
}

// Options configures a Journal.
type Options struct {
	Store store.Store
	// Builder defaults to insights.NewBuilder(nil).
	Builder *insights.Builder
	// Now defaults to time.Now.
	Now func() time.Time
}

// New creates a Journal with the given dependencies.
func New(opts Options) *Journal {
	j := &Journal{
		store:   opts.Store,
		builder: opts.Builder,
		now:     opts.Now,
	}
	if j.builder == nil {
		j.builder = insights.NewBuilder(nil)
	}
	if j.now == nil {
		j.now = time.Now
	}
	return j
}

// Close closes the underlying store.
func (j *Journal) Close() error {
	return j.store.Close()
}

// Today returns today's date key in the user's timezone.
func (j *Journal) Today(ctx context.Context) (string, error) {
	s, err := j.store.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return datekey.Format(j.now().In(s.Location())), nil
}

// Draft is the user-editable part of an entry.
type Draft struct {
	Text string
	Mood string
	Tags []string
}

// Write saves d as the entry for today. Earlier days are read-only.
func (j *Journal) Write(ctx context.Context, date string, d Draft) (entry.Entry, error) {
	today, err := j.Today(ctx)
	if err != nil {
		return entry.Entry{}, err
	}
	if !entry.Editable(date, today) {
		return entry.Entry{}, fmt.Errorf("entry for %s is no longer editable: %w", date, internalerr.ErrInvalidInput)
	}

	ts := entry.Timestamp(j.now())
	e, found, err := j.store.GetEntryByDate(ctx, date)
	if err != nil {
		return entry.Entry{}, err
	}
	if !found {
		e = entry.Entry{ID: entry.NewID(j.now()), Date: date, CreatedAt: ts}
	}
	e.Text = d.Text
	e.Mood = entry.Mood(d.Mood)
	e.Tags = d.Tags
	e.UpdatedAt = ts

	if err := j.store.UpsertEntry(ctx, e); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// Report builds the insights report as of todayKey and gates it by the
// stored entitlement and settings.
func (j *Journal) Report(ctx context.Context, todayKey string) (insights.Report, access.View, error) {
	if !datekey.Valid(todayKey) {
		return insights.Report{}, access.View{}, fmt.Errorf("today %q: %w", todayKey, internalerr.ErrInvalidDateKey)
	}
	entries, err := j.store.ListEntries(ctx)
	if err != nil {
		return insights.Report{}, access.View{}, err
	}
	ctxAccess, err := j.AccessContext(ctx)
	if err != nil {
		return insights.Report{}, access.View{}, err
	}

	report := j.builder.Build(entries, todayKey)
	return report, access.Apply(report, ctxAccess), nil
}

// AccessContext reads the inputs of access decisions from the store.
func (j *Journal) AccessContext(ctx context.Context) (access.Context, error) {
	s, err := j.store.GetSettings(ctx)
	if err != nil {
		return access.Context{}, err
	}
	state, err := j.store.GetEntitlement(ctx)
	if err != nil {
		return access.Context{}, err
	}
	return access.ContextFrom(state, s.AIInsightsEnabled), nil
}

// Search filters stored entries, newest first.
func (j *Journal) Search(ctx context.Context, query, date string, opts search.Options) ([]entry.Entry, error) {
	entries, err := j.store.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return search.FilterWithOptions(entries, query, date, opts), nil
}

// Streaks computes streaks as of todayKey.
func (j *Journal) Streaks(ctx context.Context, todayKey string) (streak.Result, error) {
	entries, err := j.store.ListEntries(ctx)
	if err != nil {
		return streak.Result{}, err
	}
	return streak.Calculate(entries, todayKey), nil
}

// Export assembles every entry and the settings into an export payload.
func (j *Journal) Export(ctx context.Context) (export.Payload, error) {
	entries, err := j.store.ListEntries(ctx)
	if err != nil {
		return export.Payload{}, err
	}
	s, err := j.store.GetSettings(ctx)
	if err != nil {
		return export.Payload{}, err
	}
	return export.Build(entries, s, j.now()), nil
}
