package entry

import (
	"errors"
	"testing"
	"time"

	"github.com/cognicore/dailyline/pkg/dailyline/internalerr"
)

func TestEntryValidate(t *testing.T) {
	ok := Entry{ID: "e1", Date: "2026-02-01"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if err := (Entry{Date: "2026-02-01"}).Validate(); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("missing id: err = %v, want ErrInvalidInput", err)
	}
	if err := (Entry{ID: "e1", Date: "2026-2-1"}).Validate(); !errors.Is(err, internalerr.ErrInvalidDateKey) {
		t.Errorf("bad date: err = %v, want ErrInvalidDateKey", err)
	}
}

func TestMoodLabel(t *testing.T) {
	tests := []struct {
		mood *string
		want string
	}{
		{nil, ""},
		{Mood("  Calm "), "calm"},
		{Mood("HAPPY"), "happy"},
	}
	for _, tt := range tests {
		if got := (Entry{Mood: tt.mood}).MoodLabel(); got != tt.want {
			t.Errorf("MoodLabel() = %q, want %q", got, tt.want)
		}
	}
	if Mood("   ") != nil {
		t.Error("Mood of blank label should be nil")
	}
}

func TestCloneIsDeep(t *testing.T) {
	e := Entry{ID: "e1", Date: "2026-02-01", Mood: Mood("calm"), Tags: []string{"home"}}
	c := e.Clone()
	*c.Mood = "sad"
	c.Tags[0] = "work"
	if *e.Mood != "calm" || e.Tags[0] != "home" {
		t.Errorf("Clone shares state with original: %+v", e)
	}
}

func TestNewIDIsMonotonic(t *testing.T) {
	now := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	a := NewID(now)
	b := NewID(now)
	if len(a) != 26 {
		t.Errorf("NewID length = %d, want 26", len(a))
	}
	if !(a < b) {
		t.Errorf("NewID not monotonic: %s >= %s", a, b)
	}
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2026, 2, 1, 8, 0, 0, 0, time.FixedZone("x", 3600)))
	if ts != "2026-02-01T07:00:00.000Z" {
		t.Errorf("Timestamp = %q", ts)
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"timezone", func(s *Settings) { s.Timezone = "Mars/Olympus" }},
		{"hour", func(s *Settings) { s.ReminderHour = 24 }},
		{"minute", func(s *Settings) { s.ReminderMinute = -1 }},
		{"theme", func(s *Settings) { s.Theme = "neon" }},
		{"premium", func(s *Settings) { s.PremiumStatus = "gold" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, internalerr.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestEditable(t *testing.T) {
	if !Editable("2024-03-10", "2024-03-10") {
		t.Error("today's entry should be editable")
	}
	if Editable("2024-03-09", "2024-03-10") {
		t.Error("yesterday's entry should not be editable")
	}
}
