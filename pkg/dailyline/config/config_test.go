package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dailyline.yaml", `
database: journal.db
timezone: Europe/Berlin
export_dir: exports
settings:
  ai_insights_enabled: false
  premium_status: premium
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database != "journal.db" || cfg.Timezone != "Europe/Berlin" || cfg.ExportDir != "exports" {
		t.Errorf("Load = %+v", cfg)
	}
	if cfg.Location().String() != "Europe/Berlin" {
		t.Errorf("Location = %s", cfg.Location())
	}

	s := cfg.DefaultSettings()
	if s.AIInsightsEnabled || s.PremiumStatus != entry.PremiumPremium || s.Timezone != "Europe/Berlin" {
		t.Errorf("DefaultSettings = %+v", s)
	}
	if s.ReminderHour != 20 {
		t.Errorf("ReminderHour = %d, want default 20", s.ReminderHour)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dailyline.yaml", "database: x.db\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timezone != "UTC" || cfg.ExportDir != "." {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if !cfg.DefaultSettings().AIInsightsEnabled {
		t.Error("AI insights should default to enabled")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "database: [unclosed"},
		{"bad timezone", "timezone: Mars/Olympus"},
		{"bad premium status", "settings:\n  premium_status: gold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "cfg.yaml", tt.content)
			if _, err := Load(path); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Load(%q) = %v, want ErrInvalidConfig", tt.content, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/dailyline.yaml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want ErrNotExist", err)
	}
}
