package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/dailyline/pkg/dailyline/entry"
	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// Config is the dailyline YAML configuration file.
type Config struct {
	// Database is the SQLite path. Empty means an in-memory store.
	Database  string `yaml:"database"`
	Timezone  string `yaml:"timezone"`
	Lexicon   string `yaml:"lexicon"`
	ExportDir string `yaml:"export_dir"`

	Settings SettingsDefaults `yaml:"settings"`
}

// SettingsDefaults seed the settings of a new store.
type SettingsDefaults struct {
	AIInsightsEnabled *bool               `yaml:"ai_insights_enabled"`
	PremiumStatus     entry.PremiumStatus `yaml:"premium_status"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Timezone:  "UTC",
		ExportDir: ".",
	}
}

// Load reads a YAML config file on top of Default and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the timezone and settings defaults.
func (c Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", internalerr.ErrInvalidConfig, c.Timezone, err)
	}
	switch c.Settings.PremiumStatus {
	case "", entry.PremiumFree, entry.PremiumPremium:
	default:
		return fmt.Errorf("%w: premium_status %q", internalerr.ErrInvalidConfig, c.Settings.PremiumStatus)
	}
	return nil
}

// Location resolves Timezone. Validate has already rejected bad names.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultSettings returns entry.DefaultSettings with the configured
// timezone and overrides applied.
func (c Config) DefaultSettings() entry.Settings {
	s := entry.DefaultSettings()
	if c.Timezone != "" {
		s.Timezone = c.Timezone
	}
	if c.Settings.AIInsightsEnabled != nil {
		s.AIInsightsEnabled = *c.Settings.AIInsightsEnabled
	}
	if c.Settings.PremiumStatus != "" {
		s.PremiumStatus = c.Settings.PremiumStatus
	}
	return s
}
