// Package profile holds the learner progression model: the persisted
// Profile type, the pure progression transitions, and the Service that
// orchestrates storage and change notification.
package profile

import (
	"time"

	"github.com/google/uuid"
)

// Progression defaults.
const (
	DefaultLevel       = 1
	DefaultNextLevelXP = 100
	DefaultDailyTarget = 20
	XPPerSpeakingEvent = 10
)

// DateLayout is the local calendar date format used everywhere a date is
// persisted.
const DateLayout = "2006-01-02"

// Profile is one learner's persisted progression and settings state.
type Profile struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Avatar      string        `json:"avatar,omitempty"`
	JoinedAt    string        `json:"joinedDate"`
	Level       int           `json:"level"`
	XP          int           `json:"xp"`
	NextLevelXP int           `json:"nextLevelXp"`
	Stats       Stats         `json:"stats"`
	Daily       DailyProgress `json:"dailyProgress"`
	Settings    Settings      `json:"settings"`
}

// Stats tracks lifetime counters for one learner.
type Stats struct {
	DaysStreak         int    `json:"daysStreak"`
	WordsLearned       int    `json:"wordsLearned"`
	TotalSpeakingCount int    `json:"totalSpeakingCount"`
	LastActiveDate     string `json:"lastActiveDate,omitempty"`
}

// DailyProgress tracks the per-day speaking count toward a daily goal.
// Count resets when the local calendar date advances past Date; Target
// survives the reset.
type DailyProgress struct {
	Date   string `json:"date"`
	Count  int    `json:"count"`
	Target int    `json:"target"`
}

// Settings holds per-profile toggles. Updates replace the whole struct.
type Settings struct {
	DarkMode      bool `json:"darkMode"`
	Notifications bool `json:"notifications"`
	EmailAlerts   bool `json:"emailAlerts"`
}

// DefaultSettings returns the settings a new profile starts with.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:      false,
		Notifications: true,
		EmailAlerts:   false,
	}
}

// DateOf formats a wall-clock instant as a local calendar date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// New creates a profile with default progression state and a fresh id.
func New(name string, now time.Time) Profile {
	return Profile{
		ID:          uuid.NewString(),
		Name:        name,
		JoinedAt:    now.Format(time.RFC3339),
		Level:       DefaultLevel,
		XP:          0,
		NextLevelXP: DefaultNextLevelXP,
		Stats:       Stats{},
		Daily: DailyProgress{
			Date:   DateOf(now),
			Count:  0,
			Target: DefaultDailyTarget,
		},
		Settings: DefaultSettings(),
	}
}
