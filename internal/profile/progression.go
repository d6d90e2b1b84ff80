package profile

import "time"

// Pure transition functions. Each takes a profile by value and returns the
// next state; callers persist the result.

// ApplyDailyRollover resets the per-day count when the local calendar date
// has advanced past the recorded one. The daily target survives the reset.
// Applying it twice with the same instant is a no-op the second time.
func ApplyDailyRollover(p Profile, now time.Time) Profile {
	today := DateOf(now)
	if p.Daily.Date == today {
		return p
	}
	target := p.Daily.Target
	if target <= 0 {
		target = DefaultDailyTarget
	}
	p.Daily = DailyProgress{
		Date:   today,
		Count:  0,
		Target: target,
	}
	return p
}

// RecordSpeaking applies one speaking event of the given size: daily and
// lifetime counters advance, XP is awarded at XPPerSpeakingEvent per unit,
// and the streak is updated against the local calendar.
//
// A single large amount can cross several level thresholds, so the
// level-up normalization loops until xp < nextLevelXp. Threshold growth
// is floor(nextLevelXp * 1.2), integer arithmetic throughout.
func RecordSpeaking(p Profile, amount int, now time.Time) Profile {
	if amount <= 0 {
		return p
	}

	p.Daily.Count += amount
	p.Stats.TotalSpeakingCount += amount

	p.XP += amount * XPPerSpeakingEvent
	if p.NextLevelXP <= 0 {
		p.NextLevelXP = DefaultNextLevelXP
	}
	if p.Level <= 0 {
		p.Level = DefaultLevel
	}
	for p.XP >= p.NextLevelXP {
		p.Level++
		p.XP -= p.NextLevelXP
		p.NextLevelXP = p.NextLevelXP * 12 / 10
	}

	today := DateOf(now)
	if p.Stats.LastActiveDate != today {
		yesterday := DateOf(now.AddDate(0, 0, -1))
		if p.Stats.LastActiveDate == yesterday {
			p.Stats.DaysStreak++
		} else {
			p.Stats.DaysStreak = 1
		}
	}
	p.Stats.LastActiveDate = today

	return p
}

// ResetProgress returns the profile to level 1 with all counters cleared.
// The daily target goes back to the default; a custom target is not kept.
func ResetProgress(p Profile, now time.Time) Profile {
	p.Level = DefaultLevel
	p.XP = 0
	p.NextLevelXP = DefaultNextLevelXP
	p.Stats = Stats{}
	p.Daily = DailyProgress{
		Date:   DateOf(now),
		Count:  0,
		Target: DefaultDailyTarget,
	}
	return p
}
