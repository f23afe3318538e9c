package utils

import (
	"time"

	"github.com/julianstephens/ascend/internal/constants"
)

// Today returns the current date string (YYYY-MM-DD) in local time
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// FormatDay formats a time as a date string (YYYY-MM-DD)
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a date string (YYYY-MM-DD)
func ParseDay(day string) (time.Time, error) {
	return time.Parse(constants.DateFormat, day)
}

// DaysBetween returns the whole days from a to b (b after a is positive).
// Both arguments are date strings; invalid input returns 0.
func DaysBetween(a, b string) int {
	ta, err := ParseDay(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// AddDays returns the date string offset days from the given date string.
// Invalid input returns the input unchanged.
func AddDays(day string, offset int) string {
	t, err := ParseDay(day)
	if err != nil {
		return day
	}
	return FormatDay(t.AddDate(0, 0, offset))
}

// ValidateDayFormat checks if the string matches the standard date format
func ValidateDayFormat(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}
