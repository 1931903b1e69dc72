package utils

import (
	"time"

	"github.com/hld/work-schedule-api/internal/constants"
)

// ParseDate parses a YYYY-MM-DD wire value into a normalized UTC date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, value)
	if err != nil {
		return time.Time{}, err
	}
	return Normalize(t), nil
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Normalize truncates a timestamp to its calendar date in UTC so stored
// dates compare by equality.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday on or before the given date. Weeks are
// identified by their Monday.
func WeekStart(date time.Time) time.Time {
	date = Normalize(date)
	offset := int(date.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += constants.DaysPerWeek
	}
	return date.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday closing the week that starts at weekStart.
func WeekEnd(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, constants.DaysPerWeek-1)
}
