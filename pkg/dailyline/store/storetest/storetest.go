// Package storetest holds behaviour tests shared by every store.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/dailyline/pkg/dailyline/access"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
	"github.com/cognicore/dailyline/pkg/dailyline/store"
)

// Opener returns a fresh, empty store. The caller closes it.
type Opener func(t *testing.T) store.Store

// Run exercises open against the store contract.
func Run(t *testing.T, open Opener) {
	t.Run("UpsertAndGet", func(t *testing.T) { testUpsertAndGet(t, open(t)) })
	t.Run("UpsertKeepsIdentity", func(t *testing.T) { testUpsertKeepsIdentity(t, open(t)) })
	t.Run("ListOrder", func(t *testing.T) { testListOrder(t, open(t)) })
	t.Run("Validation", func(t *testing.T) { testValidation(t, open(t)) })
	t.Run("DuplicateID", func(t *testing.T) { testDuplicateID(t, open(t)) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, open(t)) })
	t.Run("Entitlement", func(t *testing.T) { testEntitlement(t, open(t)) })
}

func sample(id, date, text string) entry.Entry {
	ts := date + "T08:00:00.000Z"
	return entry.Entry{
		ID:        id,
		Date:      date,
		Text:      text,
		Mood:      entry.Mood("calm"),
		Tags:      []string{"home", "focus"},
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func testUpsertAndGet(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	if _, found, err := st.GetEntryByDate(ctx, "2026-02-01"); err != nil || found {
		t.Fatalf("GetEntryByDate on empty store = %v, %v", found, err)
	}

	want := sample("entry-1", "2026-02-01", "quiet morning")
	if err := st.UpsertEntry(ctx, want); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	got, found, err := st.GetEntryByDate(ctx, "2026-02-01")
	if err != nil || !found {
		t.Fatalf("GetEntryByDate = %v, %v", found, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetEntryByDate = %+v, want %+v", got, want)
	}

	bare := entry.Entry{ID: "entry-2", Date: "2026-02-02", CreatedAt: "x", UpdatedAt: "x"}
	if err := st.UpsertEntry(ctx, bare); err != nil {
		t.Fatalf("UpsertEntry(bare): %v", err)
	}
	got, _, _ = st.GetEntryByDate(ctx, "2026-02-02")
	if got.Mood != nil || got.Tags == nil || len(got.Tags) != 0 || got.Text != "" {
		t.Errorf("bare entry = %+v, want nil mood and empty tags", got)
	}
}

func testUpsertKeepsIdentity(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	first := sample("entry-1", "2026-02-01", "draft")
	if err := st.UpsertEntry(ctx, first); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	second := entry.Entry{
		ID:        "entry-other",
		Date:      "2026-02-01",
		Text:      "final",
		Tags:      []string{"done"},
		CreatedAt: "2026-02-01T23:00:00.000Z",
		UpdatedAt: "2026-02-01T23:00:00.000Z",
	}
	if err := st.UpsertEntry(ctx, second); err != nil {
		t.Fatalf("UpsertEntry(second): %v", err)
	}

	got, _, err := st.GetEntryByDate(ctx, "2026-02-01")
	if err != nil {
		t.Fatalf("GetEntryByDate: %v", err)
	}
	if got.ID != "entry-1" || got.CreatedAt != first.CreatedAt {
		t.Errorf("identity changed: id=%s createdAt=%s", got.ID, got.CreatedAt)
	}
	if got.Text != "final" || got.Mood != nil || !reflect.DeepEqual(got.Tags, []string{"done"}) || got.UpdatedAt != second.UpdatedAt {
		t.Errorf("content not updated: %+v", got)
	}

	all, err := st.ListEntries(ctx)
	if err != nil || len(all) != 1 {
		t.Errorf("ListEntries = %d entries, %v; want 1", len(all), err)
	}
}

func testListOrder(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	for i, d := range []string{"2026-01-15", "2026-02-01", "2025-12-31"} {
		if err := st.UpsertEntry(ctx, sample("entry-"+string(rune('a'+i)), d, "text")); err != nil {
			t.Fatalf("UpsertEntry(%s): %v", d, err)
		}
	}

	want := []string{"2026-02-01", "2026-01-15", "2025-12-31"}
	dates, err := st.GetEntryDates(ctx)
	if err != nil {
		t.Fatalf("GetEntryDates: %v", err)
	}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("GetEntryDates = %v, want %v", dates, want)
	}

	entries, err := st.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	for i, e := range entries {
		if e.Date != want[i] {
			t.Errorf("ListEntries[%d] = %s, want %s", i, e.Date, want[i])
		}
	}
}

func testValidation(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	if err := st.UpsertEntry(ctx, sample("", "2026-02-01", "x")); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("UpsertEntry(no id) = %v, want ErrInvalidInput", err)
	}
	if err := st.UpsertEntry(ctx, sample("entry-1", "02/01/2026", "x")); !errors.Is(err, internalerr.ErrInvalidDateKey) {
		t.Errorf("UpsertEntry(bad date) = %v, want ErrInvalidDateKey", err)
	}
	if err := st.UpsertEntry(ctx, sample("entry-1", "2026-02-01", "")); err != nil {
		t.Errorf("UpsertEntry(empty text) = %v, want nil", err)
	}
}

func testDuplicateID(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	if err := st.UpsertEntry(ctx, sample("entry-1", "2026-02-01", "a")); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if err := st.UpsertEntry(ctx, sample("entry-1", "2026-02-02", "b")); !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("UpsertEntry(reused id) = %v, want ErrDuplicate", err)
	}
}

func testSettings(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	got, err := st.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got != entry.DefaultSettings() {
		t.Errorf("GetSettings on fresh store = %+v, want defaults", got)
	}

	updated, err := store.UpdateSettings(ctx, st, func(s *entry.Settings) {
		s.Theme = entry.ThemeDark
		s.ReminderHour = 7
		s.AIInsightsEnabled = false
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	got, err = st.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got != updated || got.Theme != entry.ThemeDark || got.ReminderHour != 7 || got.AIInsightsEnabled {
		t.Errorf("GetSettings after update = %+v", got)
	}

	bad := got
	bad.ReminderMinute = 75
	if err := st.SaveSettings(ctx, bad); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("SaveSettings(bad) = %v, want ErrInvalidInput", err)
	}
}

func testEntitlement(t *testing.T, st store.Store) {
	defer st.Close()
	ctx := context.Background()

	got, err := st.GetEntitlement(ctx)
	if err != nil {
		t.Fatalf("GetEntitlement: %v", err)
	}
	if !reflect.DeepEqual(got, access.DefaultEntitlementState()) {
		t.Errorf("GetEntitlement on fresh store = %+v", got)
	}

	if _, err := store.RecordEntitlement(ctx, st, access.EntitlementPremium, "2026-02-08T00:00:00.000Z"); err != nil {
		t.Fatalf("RecordEntitlement(premium): %v", err)
	}
	next, err := store.RecordEntitlement(ctx, st, access.EntitlementUnknown, "2026-02-08T01:00:00.000Z")
	if err != nil {
		t.Fatalf("RecordEntitlement(unknown): %v", err)
	}

	got, err = st.GetEntitlement(ctx)
	if err != nil {
		t.Fatalf("GetEntitlement: %v", err)
	}
	if !reflect.DeepEqual(got, next) {
		t.Errorf("GetEntitlement = %+v, want %+v", got, next)
	}
	if got.Status != access.EntitlementUnknown || got.LastKnownStatus != access.EntitlementPremium {
		t.Errorf("state = %+v, want unknown with last known premium", got)
	}

	if err := st.SaveEntitlement(ctx, access.EntitlementState{Status: "bogus", LastKnownStatus: "unknown"}); err != nil {
		t.Fatalf("SaveEntitlement: %v", err)
	}
	got, _ = st.GetEntitlement(ctx)
	if got.Status != access.EntitlementFree || got.LastKnownStatus != access.EntitlementFree {
		t.Errorf("unrecognized state should normalize to free, got %+v", got)
	}
}
