package entry

import (
	"fmt"
	"time"

	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// PremiumStatus is the purchase state recorded in settings.
type PremiumStatus string

const (
	PremiumFree    PremiumStatus = "free"
	PremiumPremium PremiumStatus = "premium"
)

// Settings are the user's preferences.
type Settings struct {
	Timezone          string        `json:"timezone" yaml:"timezone"`
	ReminderEnabled   bool          `json:"reminderEnabled" yaml:"reminder_enabled"`
	ReminderHour      int           `json:"reminderHour" yaml:"reminder_hour"`
	ReminderMinute    int           `json:"reminderMinute" yaml:"reminder_minute"`
	Theme             Theme         `json:"theme" yaml:"theme"`
	PremiumStatus     PremiumStatus `json:"premiumStatus" yaml:"premium_status"`
	AIInsightsEnabled bool          `json:"aiInsightsEnabled" yaml:"ai_insights_enabled"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		Timezone:          "UTC",
		ReminderEnabled:   true,
		ReminderHour:      20,
		ReminderMinute:    0,
		Theme:             ThemeSystem,
		PremiumStatus:     PremiumFree,
		AIInsightsEnabled: true,
	}
}

// Validate rejects settings that cannot be stored or scheduled.
func (s Settings) Validate() error {
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", internalerr.ErrInvalidInput, s.Timezone, err)
	}
	if s.ReminderHour < 0 || s.ReminderHour > 23 {
		return fmt.Errorf("%w: reminder hour %d", internalerr.ErrInvalidInput, s.ReminderHour)
	}
	if s.ReminderMinute < 0 || s.ReminderMinute > 59 {
		return fmt.Errorf("%w: reminder minute %d", internalerr.ErrInvalidInput, s.ReminderMinute)
	}
	switch s.Theme {
	case ThemeSystem, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: theme %q", internalerr.ErrInvalidInput, s.Theme)
	}
	switch s.PremiumStatus {
	case PremiumFree, PremiumPremium:
	default:
		return fmt.Errorf("%w: premium status %q", internalerr.ErrInvalidInput, s.PremiumStatus)
	}
	return nil
}

// Location resolves the settings timezone, falling back to UTC.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
