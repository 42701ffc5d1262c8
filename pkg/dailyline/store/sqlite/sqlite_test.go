package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/store"
	"github.com/cognicore/dailyline/pkg/dailyline/store/storetest"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	return st
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, openTemp)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	e := entry.Entry{
		ID:        "entry-1",
		Date:      "2026-02-01",
		Text:      "kept",
		Mood:      entry.Mood("good"),
		Tags:      []string{"a"},
		CreatedAt: "2026-02-01T08:00:00.000Z",
		UpdatedAt: "2026-02-01T08:00:00.000Z",
	}
	if err := st.UpsertEntry(ctx, e); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	if _, err := store.UpdateSettings(ctx, st, func(s *entry.Settings) { s.Timezone = "Europe/Paris" }); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	got, found, err := st.GetEntryByDate(ctx, "2026-02-01")
	if err != nil || !found {
		t.Fatalf("GetEntryByDate after reopen = %v, %v", found, err)
	}
	if got.Text != "kept" || got.MoodLabel() != "good" {
		t.Errorf("entry after reopen = %+v", got)
	}
	s, err := st.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if s.Timezone != "Europe/Paris" {
		t.Errorf("Timezone = %s, want Europe/Paris", s.Timezone)
	}
}

func TestGetSettingsMergesPartialValue(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)
	defer st.Close()

	raw := st.(*sqliteStore)
	if _, err := raw.db.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, settingsKey, `{"theme":"light"}`); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	s, err := st.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	want := entry.DefaultSettings()
	want.Theme = entry.ThemeLight
	if s != want {
		t.Errorf("GetSettings = %+v, want %+v", s, want)
	}
}

func TestGetSettingsReplacesCorruptValue(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)
	defer st.Close()

	raw := st.(*sqliteStore)
	if _, err := raw.db.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, settingsKey, `{not json`); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	s, err := st.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if s != entry.DefaultSettings() {
		t.Errorf("GetSettings = %+v, want defaults", s)
	}
}
