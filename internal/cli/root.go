package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/engine"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/state"
	"github.com/julianstephens/ascend/internal/storage"
)

// Context is the shared dependency bag passed to every command's Run method
type Context struct {
	Store  storage.Provider
	State  *state.State
	Engine *engine.Engine
}

// SaveState persists the current state tree through the active provider
func (c *Context) SaveState() error {
	if c.State == nil {
		return fmt.Errorf("no state loaded")
	}
	return c.Store.Save(c.State)
}

// ParseWeekdays parses a comma-separated list of weekday names or numbers
func ParseWeekdays(s string) ([]time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	return weekdays, nil
}

// FormatRepeat renders a repeat rule as a short human-readable string
func FormatRepeat(rule models.RepeatRule) string {
	switch rule.Type {
	case constants.RepeatNone, "":
		return ""
	case constants.RepeatDaily:
		return "daily"
	case constants.RepeatWeekly:
		if len(rule.Weekdays) > 0 {
			var days []string
			for _, wd := range rule.Weekdays {
				days = append(days, wd.String()[:3])
			}
			return fmt.Sprintf("weekly on %s", strings.Join(days, ","))
		}
		return "weekly"
	case constants.RepeatMonthly:
		return "monthly"
	case constants.RepeatYearly:
		return "yearly"
	case constants.RepeatCustom:
		interval := rule.Interval
		if interval < 1 {
			interval = 1
		}
		return fmt.Sprintf("every %d days", interval)
	default:
		return string(rule.Type)
	}
}

// ResolveDay validates an explicit date flag, defaulting to today
func ResolveDay(flag string) (string, error) {
	if flag == "" {
		return time.Now().Format(constants.DateFormat), nil
	}
	if _, err := time.Parse(constants.DateFormat, flag); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", flag)
	}
	return flag, nil
}
