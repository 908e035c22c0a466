// Package calendar maps (year, week number) pairs onto concrete date
// ranges. Every week runs Monday through Sunday; week 1 of a year is
// the first Monday-aligned week whose start falls on or after January 1
// of that year. All functions are pure so that clients and the registry
// agree on boundaries without exchanging date strings.
package calendar

import "time"

// MaxWeek is the largest week number a year can index.
const MaxWeek = 53

// ValidWeek reports whether w is a usable week number.
func ValidWeek(w int) bool {
	return w >= 1 && w <= MaxWeek
}

// WeekRange returns the inclusive Monday..Sunday range of the given
// week. Inputs outside ValidWeek are the caller's responsibility; the
// arithmetic stays deterministic regardless.
func WeekRange(year, week int) (start, end time.Time) {
	start = firstWeekStart(year).AddDate(0, 0, 7*(week-1))
	end = start.AddDate(0, 0, 6)
	return start, end
}

// CurrentWeek resolves "today" into the (year, week) pair it belongs
// to under the same Monday-start convention. Days before a year's
// first week belong to the final week of the prior year.
func CurrentWeek(now time.Time) (year, week int) {
	today := DateOnly(now)
	year = today.Year()

	w1 := firstWeekStart(year)
	if today.Before(w1) {
		year--
		w1 = firstWeekStart(year)
	}

	week = int(today.Sub(w1).Hours()/24)/7 + 1
	return year, week
}

// DateOnly strips the time-of-day and location from a timestamp,
// normalizing to midnight UTC. Entry dates compare by this form.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// firstWeekStart returns the Monday starting week 1 of a year: the
// Monday of January 1's week, advanced by one week when that Monday
// falls in the prior year.
func firstWeekStart(year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysSinceMonday := (int(jan1.Weekday()) + 6) % 7
	monday := jan1.AddDate(0, 0, -daysSinceMonday)
	if monday.Year() < year {
		monday = monday.AddDate(0, 0, 7)
	}
	return monday
}
