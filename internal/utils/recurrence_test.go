package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextOccurrence_Daily(t *testing.T) {
	next, ok := NextOccurrence(models.RepeatRule{Type: constants.RepeatDaily}, day("2024-03-01"))
	if !ok || FormatDay(next) != "2024-03-02" {
		t.Errorf("daily next = %v %v", next, ok)
	}

	next, ok = NextOccurrence(models.RepeatRule{Type: constants.RepeatDaily, Interval: 3}, day("2024-03-01"))
	if !ok || FormatDay(next) != "2024-03-04" {
		t.Errorf("every-3-days next = %v %v", next, ok)
	}
}

func TestNextOccurrence_WeeklyPlain(t *testing.T) {
	next, ok := NextOccurrence(models.RepeatRule{Type: constants.RepeatWeekly}, day("2024-03-01"))
	if !ok || FormatDay(next) != "2024-03-08" {
		t.Errorf("weekly next = %v %v", next, ok)
	}
}

func TestNextOccurrence_WeeklyConfiguredWeekdays(t *testing.T) {
	rule := models.RepeatRule{
		Type:     constants.RepeatWeekly,
		Weekdays: []time.Weekday{time.Monday, time.Friday},
	}

	// 2024-03-04 is a Monday; the next configured day is that week's Friday
	next, ok := NextOccurrence(rule, day("2024-03-04"))
	if !ok || FormatDay(next) != "2024-03-08" {
		t.Errorf("Monday -> %v %v, want Friday 2024-03-08", next, ok)
	}

	// From Friday it wraps to the following Monday
	next, ok = NextOccurrence(rule, day("2024-03-08"))
	if !ok || FormatDay(next) != "2024-03-11" {
		t.Errorf("Friday -> %v %v, want Monday 2024-03-11", next, ok)
	}
}

func TestNextOccurrence_MonthlyAndYearly(t *testing.T) {
	next, ok := NextOccurrence(models.RepeatRule{Type: constants.RepeatMonthly}, day("2024-01-31"))
	if !ok || FormatDay(next) != "2024-03-02" {
		t.Errorf("monthly from Jan 31 = %v %v (AddDate overflow lands in March)", next, ok)
	}

	next, ok = NextOccurrence(models.RepeatRule{Type: constants.RepeatYearly}, day("2024-03-01"))
	if !ok || FormatDay(next) != "2025-03-01" {
		t.Errorf("yearly next = %v %v", next, ok)
	}
}

func TestNextOccurrence_CustomDayCount(t *testing.T) {
	rule := models.RepeatRule{Type: constants.RepeatCustom, Interval: 10}
	next, ok := NextOccurrence(rule, day("2024-03-01"))
	if !ok || FormatDay(next) != "2024-03-11" {
		t.Errorf("custom-10 next = %v %v", next, ok)
	}
}

func TestNextOccurrence_NoneNeverRecurs(t *testing.T) {
	if _, ok := NextOccurrence(models.RepeatRule{Type: constants.RepeatNone}, day("2024-03-01")); ok {
		t.Error("non-repeating rule should not produce an occurrence")
	}
}

func TestNextOccurrence_EndDateCutsOff(t *testing.T) {
	rule := models.RepeatRule{Type: constants.RepeatDaily, EndDate: "2024-03-02"}

	next, ok := NextOccurrence(rule, day("2024-03-01"))
	if !ok || FormatDay(next) != "2024-03-02" {
		t.Errorf("occurrence on the end date should stand, got %v %v", next, ok)
	}
	if _, ok := NextOccurrence(rule, day("2024-03-02")); ok {
		t.Error("occurrence past the end date should stop")
	}
}
