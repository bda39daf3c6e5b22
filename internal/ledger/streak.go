package ledger

import "time"

// civilDay maps t to midnight UTC of its calendar date in loc, so day
// arithmetic is not affected by DST transitions.
func civilDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from prev to next in loc.
// The result is negative when next falls on an earlier day.
func DaysBetween(prev, next time.Time, loc *time.Location) int {
	return int(civilDay(next, loc).Sub(civilDay(prev, loc)).Hours() / 24)
}

// NextStreak applies the daily streak rule for an activity at now.
func NextStreak(streak int, last, now time.Time, loc *time.Location) int {
	if last.IsZero() {
		return 1
	}
	switch DaysBetween(last, now, loc) {
	case 0:
		return streak
	case 1:
		return streak + 1
	default:
		return 1
	}
}
