// Package period computes the calendar windows used by submission limits
// and the monthly leaderboard.
package period

import "time"

const monthLayout = "2006-01"

// MonthYear formats t as YYYY-MM.
func MonthYear(t time.Time) string {
	return t.Format(monthLayout)
}

// ParseMonthYear parses a YYYY-MM string in loc.
func ParseMonthYear(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(monthLayout, s, loc)
}

// PreviousMonth returns the YYYY-MM preceding the month of t.
func PreviousMonth(t time.Time) string {
	return MonthYear(StartOfMonth(t).AddDate(0, 0, -1))
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
