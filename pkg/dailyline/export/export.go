// Package export writes a user's entries and settings as a portable JSON
// document.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// SchemaVersion is the version of the exported document and of the
// on-disk database schema.
const SchemaVersion = 1

// FilePrefix starts every export file name.
const FilePrefix = "dailyline-export-"

// Payload is the exported document.
type Payload struct {
	SchemaVersion int            `json:"schemaVersion"`
	ExportedAt    string         `json:"exportedAt"`
	Entries       []entry.Entry  `json:"entries"`
	Settings      entry.Settings `json:"settings"`
}

var exportJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Build assembles a payload stamped with now.
func Build(entries []entry.Entry, settings entry.Settings, now time.Time) Payload {
	if entries == nil {
		entries = []entry.Entry{}
	}
	return Payload{
		SchemaVersion: SchemaVersion,
		ExportedAt:    entry.Timestamp(now),
		Entries:       entries,
		Settings:      settings,
	}
}

// Write encodes p to w as two-space indented JSON.
func Write(w io.Writer, p Payload) error {
	data, err := exportJSON.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Read decodes a payload previously produced by Write.
func Read(r io.Reader) (Payload, error) {
	var p Payload
	if err := exportJSON.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decode export: %w: %v", internalerr.ErrInvalidInput, err)
	}
	if p.SchemaVersion != SchemaVersion {
		return Payload{}, fmt.Errorf("export schema version %d: %w", p.SchemaVersion, internalerr.ErrInvalidInput)
	}
	return p, nil
}

// FileName is the export file name for a payload written at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("%s%d.json", FilePrefix, t.UnixMilli())
}

// WriteFile writes p into dir, naming the file after p.ExportedAt, and
// returns its path.
func WriteFile(dir string, p Payload) (string, error) {
	stamp, err := time.Parse(time.RFC3339Nano, p.ExportedAt)
	if err != nil {
		return "", fmt.Errorf("exportedAt %q: %w", p.ExportedAt, internalerr.ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, FileName(stamp))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, p); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}
