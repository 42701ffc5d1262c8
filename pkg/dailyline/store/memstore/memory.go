package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/dailyline/pkg/dailyline/access"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu          sync.RWMutex
	byDate      map[string]entry.Entry
	dateByID    map[string]string
	defaults    entry.Settings
	settings    *entry.Settings
	entitlement *access.EntitlementState
}

var _ store.Store = (*Store)(nil)

// New creates an empty store. The optional settings replace
// entry.DefaultSettings as the settings of a fresh store.
func New(defaults ...entry.Settings) *Store {
	s := &Store{
		byDate:   make(map[string]entry.Entry),
		dateByID: make(map[string]string),
		defaults: entry.DefaultSettings(),
	}
	if len(defaults) > 0 {
		s.defaults = defaults[0]
	}
	return s
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// GetEntryByDate returns the entry stored for date.
func (s *Store) GetEntryByDate(ctx context.Context, date string) (entry.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byDate[date]
	if !ok {
		return entry.Entry{}, false, nil
	}
	return e.Clone(), true, nil
}

// UpsertEntry inserts or updates the entry for e.Date.
func (s *Store) UpsertEntry(ctx context.Context, e entry.Entry) error {
	if err := store.ValidateEntry(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byDate[e.Date]; ok {
		existing.Text = e.Text
		existing.Mood = e.Mood
		existing.Tags = e.Tags
		existing.UpdatedAt = e.UpdatedAt
		s.byDate[e.Date] = normalize(existing)
		return nil
	}

	if date, ok := s.dateByID[e.ID]; ok && date != e.Date {
		return store.DuplicateIDError(e.ID, e.Date)
	}
	s.byDate[e.Date] = normalize(e)
	s.dateByID[e.ID] = e.Date
	return nil
}

// ListEntries returns every entry, newest date first.
func (s *Store) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entry.Entry, 0, len(s.byDate))
	for _, e := range s.byDate {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// GetEntryDates returns every entry date, newest first.
func (s *Store) GetEntryDates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, 0, len(s.byDate))
	for d := range s.byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// GetSettings returns the stored settings, saving the defaults on first use.
func (s *Store) GetSettings(ctx context.Context) (entry.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		def := s.defaults
		s.settings = &def
	}
	return *s.settings, nil
}

// SaveSettings replaces the stored settings.
func (s *Store) SaveSettings(ctx context.Context, settings entry.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = &settings
	return nil
}

// GetEntitlement returns the stored entitlement, saving the free default on
// first use.
func (s *Store) GetEntitlement(ctx context.Context) (access.EntitlementState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entitlement == nil {
		def := access.DefaultEntitlementState()
		s.entitlement = &def
	}
	return copyEntitlement(*s.entitlement), nil
}

// SaveEntitlement replaces the stored entitlement.
func (s *Store) SaveEntitlement(ctx context.Context, state access.EntitlementState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state = copyEntitlement(store.NormalizeEntitlement(state))
	s.entitlement = &state
	return nil
}

func normalize(e entry.Entry) entry.Entry {
	e = e.Clone()
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e
}

func copyEntitlement(state access.EntitlementState) access.EntitlementState {
	if state.LastCheckedAt != nil {
		at := *state.LastCheckedAt
		state.LastCheckedAt = &at
	}
	return state
}
