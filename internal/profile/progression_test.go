package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestRecordSpeakingAwardsXP(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")
	p := New("User", now)

	p = RecordSpeaking(p, 3, now)

	assert.Equal(t, 30, p.XP)
	assert.Equal(t, 3, p.Daily.Count)
	assert.Equal(t, 3, p.Stats.TotalSpeakingCount)
	assert.Equal(t, 1, p.Level)
}

func TestRecordSpeakingLevelUp(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")
	p := New("User", now)
	p.XP = 95

	p = RecordSpeaking(p, 3, now)

	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 25, p.XP)
	assert.Equal(t, 120, p.NextLevelXP)
}

func TestRecordSpeakingMultiLevelUp(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")
	p := New("User", now)

	// 300 xp crosses level 1 (100) and level 2 (120) in one call.
	p = RecordSpeaking(p, 30, now)

	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 80, p.XP)
	assert.Equal(t, 144, p.NextLevelXP)
}

func TestRecordSpeakingThresholdGrowthIsFloored(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")
	p := New("User", now)
	p.NextLevelXP = 25

	p = RecordSpeaking(p, 3, now)

	// floor(25 * 1.2) = 30, never 30.0-rounded-up territory.
	assert.Equal(t, 30, p.NextLevelXP)
}

func TestRecordSpeakingNonPositiveAmountIsIdentity(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")
	p := New("User", now)
	p.Stats.LastActiveDate = "2026-03-01"

	for _, amount := range []int{0, -1, -20} {
		got := RecordSpeaking(p, amount, now)
		assert.Equal(t, p, got, "amount %d must not mutate anything", amount)
	}
}

func TestRecordSpeakingStreak(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")

	tests := []struct {
		name       string
		lastActive string
		streak     int
		want       int
	}{
		{"first event ever", "", 0, 1},
		{"same day keeps streak", "2026-03-10", 4, 4},
		{"consecutive day extends", "2026-03-09", 4, 5},
		{"gap resets to one", "2026-03-07", 9, 1},
		{"future date resets to one", "2026-03-12", 9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("User", now)
			p.Stats.LastActiveDate = tt.lastActive
			p.Stats.DaysStreak = tt.streak

			p = RecordSpeaking(p, 1, now)

			assert.Equal(t, tt.want, p.Stats.DaysStreak)
			assert.Equal(t, "2026-03-10", p.Stats.LastActiveDate)
		})
	}
}

func TestApplyDailyRollover(t *testing.T) {
	start := mustTime(t, "2026-03-10T23:50:00Z")
	p := New("User", start)
	p.Daily.Count = 15
	p.Daily.Target = 30

	next := mustTime(t, "2026-03-11T00:05:00Z")
	p = ApplyDailyRollover(p, next)

	assert.Equal(t, "2026-03-11", p.Daily.Date)
	assert.Equal(t, 0, p.Daily.Count)
	assert.Equal(t, 30, p.Daily.Target, "custom target survives the rollover")
}

func TestApplyDailyRolloverIsIdempotent(t *testing.T) {
	now := mustTime(t, "2026-03-11T08:00:00Z")
	p := New("User", mustTime(t, "2026-03-10T09:00:00Z"))
	p.Daily.Count = 7

	once := ApplyDailyRollover(p, now)
	once.Daily.Count = 3
	twice := ApplyDailyRollover(once, now)

	assert.Equal(t, once, twice)
}

func TestApplyDailyRolloverRepairsBadTarget(t *testing.T) {
	now := mustTime(t, "2026-03-11T08:00:00Z")
	p := New("User", mustTime(t, "2026-03-10T09:00:00Z"))
	p.Daily.Target = 0

	p = ApplyDailyRollover(p, now)

	assert.Equal(t, DefaultDailyTarget, p.Daily.Target)
}

func TestResetProgress(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")
	p := New("Mina", now)
	p.Level = 7
	p.XP = 43
	p.NextLevelXP = 298
	p.Stats = Stats{DaysStreak: 12, WordsLearned: 40, TotalSpeakingCount: 500, LastActiveDate: "2026-03-09"}
	p.Daily = DailyProgress{Date: "2026-03-09", Count: 18, Target: 50}
	p.Settings.DarkMode = true

	got := ResetProgress(p, now)

	assert.Equal(t, DefaultLevel, got.Level)
	assert.Equal(t, 0, got.XP)
	assert.Equal(t, DefaultNextLevelXP, got.NextLevelXP)
	assert.Equal(t, Stats{}, got.Stats)
	assert.Equal(t, DailyProgress{Date: "2026-03-10", Count: 0, Target: DefaultDailyTarget}, got.Daily)

	// Identity and preferences are untouched.
	assert.Equal(t, "Mina", got.Name)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, got.Settings.DarkMode)
}

func TestLevelNeverDecreases(t *testing.T) {
	now := mustTime(t, "2026-03-10T09:00:00Z")
	p := New("User", now)

	prevLevel := p.Level
	for i := 0; i < 200; i++ {
		p = RecordSpeaking(p, 1, now)
		require.GreaterOrEqual(t, p.Level, prevLevel)
		require.Less(t, p.XP, p.NextLevelXP)
		require.GreaterOrEqual(t, p.XP, 0)
		prevLevel = p.Level
	}
}
