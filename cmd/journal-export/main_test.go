package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/export"
	"github.com/cognicore/dailyline/pkg/dailyline/store/sqlite"
)

func TestWriteExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, err := sqlite.OpenSQLite(ctx, filepath.Join(dir, "journal.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	e := entry.Entry{ID: "a", Date: "2026-02-01", Text: "hello", CreatedAt: "t", UpdatedAt: "t"}
	if err := st.UpsertEntry(ctx, e); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}

	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	path, err := writeExport(ctx, st, filepath.Join(dir, "out"), now)
	if err != nil {
		t.Fatalf("writeExport: %v", err)
	}
	if filepath.Base(path) != export.FileName(now) {
		t.Errorf("file = %s, want %s", filepath.Base(path), export.FileName(now))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	p, err := export.Read(f)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(p.Entries) != 1 || p.Entries[0].Text != "hello" || p.Settings != entry.DefaultSettings() {
		t.Errorf("payload = %+v", p)
	}
}
