package utils

import (
	"sort"
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

// NextOccurrence computes the date a recurring task comes due again after the
// given occurrence. Returns false for rules that never recur, or once the next
// date would pass the rule's end date.
func NextOccurrence(rule models.RepeatRule, from time.Time) (time.Time, bool) {
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	var next time.Time
	switch rule.Type {
	case constants.RepeatDaily:
		next = from.AddDate(0, 0, interval)
	case constants.RepeatWeekly:
		if len(rule.Weekdays) > 0 {
			next = nextConfiguredWeekday(from, rule.Weekdays)
		} else {
			next = from.AddDate(0, 0, 7*interval)
		}
	case constants.RepeatMonthly:
		next = from.AddDate(0, interval, 0)
	case constants.RepeatYearly:
		next = from.AddDate(interval, 0, 0)
	case constants.RepeatCustom:
		// Custom rules treat the interval as a day count
		next = from.AddDate(0, 0, interval)
	default:
		return time.Time{}, false
	}

	if rule.EndDate != "" {
		end, err := time.Parse(constants.DateFormat, rule.EndDate)
		if err == nil && next.After(end) {
			return time.Time{}, false
		}
	}

	return next, true
}

// nextConfiguredWeekday finds the next configured weekday strictly after the
// given day, wrapping to the first configured weekday of the following week
// when none remain.
func nextConfiguredWeekday(from time.Time, weekdays []time.Weekday) time.Time {
	days := make([]time.Weekday, len(weekdays))
	copy(days, weekdays)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	current := from.Weekday()
	for _, wd := range days {
		if wd > current {
			return from.AddDate(0, 0, int(wd-current))
		}
	}

	// Wrap to the first configured weekday next week
	return from.AddDate(0, 0, 7-int(current-days[0]))
}
