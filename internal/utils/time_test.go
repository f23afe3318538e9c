package utils

import "testing"

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween("2024-03-01", "2024-03-11"); got != 10 {
		t.Errorf("DaysBetween forward = %d, want 10", got)
	}
	if got := DaysBetween("2024-03-11", "2024-03-01"); got != -10 {
		t.Errorf("DaysBetween backward = %d, want -10", got)
	}
	if got := DaysBetween("2024-03-01", "2024-03-01"); got != 0 {
		t.Errorf("DaysBetween same day = %d, want 0", got)
	}
	if got := DaysBetween("not-a-date", "2024-03-01"); got != 0 {
		t.Errorf("DaysBetween invalid input = %d, want 0", got)
	}
}

func TestAddDays(t *testing.T) {
	if got := AddDays("2024-02-28", 2); got != "2024-03-01" {
		t.Errorf("AddDays across leap February = %q", got)
	}
	if got := AddDays("2024-03-01", -1); got != "2024-02-29" {
		t.Errorf("AddDays negative = %q", got)
	}
	if got := AddDays("bogus", 5); got != "bogus" {
		t.Errorf("AddDays invalid input = %q, want unchanged", got)
	}
}

func TestValidateDayFormat(t *testing.T) {
	if !ValidateDayFormat("2024-03-01") {
		t.Error("valid date rejected")
	}
	for _, bad := range []string{"2024-3-1", "03-01-2024", "2024-03-32", "today", ""} {
		if ValidateDayFormat(bad) {
			t.Errorf("%q should be rejected", bad)
		}
	}
}
