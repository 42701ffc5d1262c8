package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	_ "modernc.org/sqlite"

	"github.com/cognicore/dailyline/pkg/dailyline/access"
	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
	"github.com/cognicore/dailyline/pkg/dailyline/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Keys of the settings key/value table.
const (
	settingsKey    = "user_settings"
	entitlementKey = "entitlement_state"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db       *sql.DB
	defaults entry.Settings
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
// Optional settings replace entry.DefaultSettings as the settings saved on
// first use.
func OpenSQLite(ctx context.Context, path string, defaults ...entry.Settings) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s := &sqliteStore{db: db, defaults: entry.DefaultSettings()}
	if len(defaults) > 0 {
		s.defaults = defaults[0]
	}
	return s, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY NOT NULL,
	date TEXT NOT NULL UNIQUE,
	text TEXT NOT NULL,
	mood TEXT,
	tags TEXT,
	createdAt TEXT NOT NULL,
	updatedAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY NOT NULL,
	value TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

const entryColumns = "id, date, text, mood, tags, createdAt, updatedAt"

func (s *sqliteStore) GetEntryByDate(ctx context.Context, date string) (entry.Entry, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE date = ? LIMIT 1", date)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entry.Entry{}, false, nil
	}
	if err != nil {
		return entry.Entry{}, false, err
	}
	return e, true, nil
}

func (s *sqliteStore) UpsertEntry(ctx context.Context, e entry.Entry) error {
	if err := store.ValidateEntry(e); err != nil {
		return err
	}

	var tags sql.NullString
	if e.Tags != nil {
		data, err := json.Marshal(e.Tags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		tags = sql.NullString{String: string(data), Valid: true}
	}
	var mood sql.NullString
	if e.Mood != nil {
		mood = sql.NullString{String: *e.Mood, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO entries (`+entryColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
	text = excluded.text,
	mood = excluded.mood,
	tags = excluded.tags,
	updatedAt = excluded.updatedAt;
`, e.ID, e.Date, e.Text, mood, tags, e.CreatedAt, e.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: entries.id") {
		return store.DuplicateIDError(e.ID, e.Date)
	}
	return err
}

func (s *sqliteStore) ListEntries(ctx context.Context) ([]entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+entryColumns+" FROM entries ORDER BY date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *sqliteStore) GetEntryDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT date FROM entries ORDER BY date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// GetSettings merges the stored settings onto the defaults. Missing or
// unreadable settings are replaced by the defaults.
func (s *sqliteStore) GetSettings(ctx context.Context) (entry.Settings, error) {
	settings := s.defaults
	ok, err := s.loadValue(ctx, settingsKey, &settings)
	if err != nil {
		return entry.Settings{}, err
	}
	if ok {
		return settings, nil
	}
	if err := s.saveValue(ctx, settingsKey, s.defaults); err != nil {
		return entry.Settings{}, err
	}
	return s.defaults, nil
}

func (s *sqliteStore) SaveSettings(ctx context.Context, settings entry.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.saveValue(ctx, settingsKey, settings)
}

func (s *sqliteStore) GetEntitlement(ctx context.Context) (access.EntitlementState, error) {
	var state access.EntitlementState
	ok, err := s.loadValue(ctx, entitlementKey, &state)
	if err != nil {
		return access.EntitlementState{}, err
	}
	if ok {
		return store.NormalizeEntitlement(state), nil
	}
	def := access.DefaultEntitlementState()
	if err := s.saveValue(ctx, entitlementKey, def); err != nil {
		return access.EntitlementState{}, err
	}
	return def, nil
}

func (s *sqliteStore) SaveEntitlement(ctx context.Context, state access.EntitlementState) error {
	return s.saveValue(ctx, entitlementKey, store.NormalizeEntitlement(state))
}

// loadValue decodes the JSON value stored under key into v. It reports
// false when the key is missing or its value cannot be decoded.
func (s *sqliteStore) loadValue(ctx context.Context, key string, v interface{}) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ? LIMIT 1", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *sqliteStore) saveValue(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`, key, string(data))
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(r rowScanner) (entry.Entry, error) {
	var (
		e    entry.Entry
		mood sql.NullString
		tags sql.NullString
	)
	if err := r.Scan(&e.ID, &e.Date, &e.Text, &mood, &tags, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return entry.Entry{}, err
	}
	if mood.Valid {
		e.Mood = &mood.String
	}
	e.Tags = []string{}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &e.Tags); err != nil {
			return entry.Entry{}, fmt.Errorf("%w: tags of entry %s: %v", internalerr.ErrInvalidInput, e.ID, err)
		}
		if e.Tags == nil {
			e.Tags = []string{}
		}
	}
	return e, nil
}
