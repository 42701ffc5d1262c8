// Package store defines persistence for journal entries, user settings and
// the purchase entitlement.
package store

import (
	"context"
	"fmt"

	"github.com/cognicore/dailyline/pkg/dailyline/access"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// Store is the main interface for persisting dailyline data.
type Store interface {
	Close() error

	// Entries. There is at most one entry per date.
	GetEntryByDate(ctx context.Context, date string) (entry.Entry, bool, error)
	// UpsertEntry inserts e, or updates text, mood, tags and updatedAt of
	// the entry already stored for e.Date. The stored id and createdAt win.
	UpsertEntry(ctx context.Context, e entry.Entry) error
	// ListEntries returns every entry, newest date first.
	ListEntries(ctx context.Context) ([]entry.Entry, error)
	// GetEntryDates returns every entry date, newest first.
	GetEntryDates(ctx context.Context) ([]string, error)

	// Settings. A store that has none yet returns and saves its defaults.
	GetSettings(ctx context.Context) (entry.Settings, error)
	SaveSettings(ctx context.Context, s entry.Settings) error

	// Entitlement. A store that has none yet returns and saves the
	// default free state.
	GetEntitlement(ctx context.Context) (access.EntitlementState, error)
	SaveEntitlement(ctx context.Context, state access.EntitlementState) error
}

// ValidateEntry checks an entry before it is written.
func ValidateEntry(e entry.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// UpdateSettings loads the settings, applies fn and saves the result.
func UpdateSettings(ctx context.Context, st Store, fn func(*entry.Settings)) (entry.Settings, error) {
	s, err := st.GetSettings(ctx)
	if err != nil {
		return entry.Settings{}, err
	}
	fn(&s)
	if err := s.Validate(); err != nil {
		return entry.Settings{}, err
	}
	if err := st.SaveSettings(ctx, s); err != nil {
		return entry.Settings{}, err
	}
	return s, nil
}

// RecordEntitlement stores the outcome of an entitlement check made at
// checkedAt and returns the new state.
func RecordEntitlement(ctx context.Context, st Store, status access.Entitlement, checkedAt string) (access.EntitlementState, error) {
	current, err := st.GetEntitlement(ctx)
	if err != nil {
		return access.EntitlementState{}, err
	}
	next := current.Next(status, checkedAt)
	if err := st.SaveEntitlement(ctx, next); err != nil {
		return access.EntitlementState{}, err
	}
	return next, nil
}

// NormalizeEntitlement replaces unrecognized fields with the defaults.
func NormalizeEntitlement(state access.EntitlementState) access.EntitlementState {
	def := access.DefaultEntitlementState()
	if _, err := access.ParseEntitlement(string(state.Status)); err != nil {
		state.Status = def.Status
	}
	if !state.LastKnownStatus.Stable() {
		state.LastKnownStatus = def.LastKnownStatus
	}
	return state
}

// DuplicateIDError reports an entry id that is already used by another date.
func DuplicateIDError(id, date string) error {
	return fmt.Errorf("entry %s is stored under a date other than %s: %w", id, date, internalerr.ErrDuplicate)
}
