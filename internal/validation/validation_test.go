package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/state"
)

func hasType(r *Result, t FindingType) bool {
	for _, f := range r.Findings {
		if f.Type == t {
			return true
		}
	}
	return false
}

func TestCheck_FreshStateClean(t *testing.T) {
	r := Check(state.New())
	if r.HasFindings() {
		t.Errorf("fresh state should be clean, got:\n%s", r.FormatReport())
	}
}

func TestCheck_DuplicateAndOrphanEntries(t *testing.T) {
	st := state.New()
	st.Habits = append(st.Habits, models.Habit{ID: "h1", Name: "Read"})
	st.HabitEntries = append(st.HabitEntries,
		models.HabitEntry{ID: "e1", HabitID: "h1", Day: "2024-03-01"},
		models.HabitEntry{ID: "e2", HabitID: "h1", Day: "2024-03-01"},
		models.HabitEntry{ID: "e3", HabitID: "ghost", Day: "2024-03-02"},
		models.HabitEntry{ID: "e4", HabitID: "h1", Day: "3/1/24"},
	)

	r := Check(st)
	if !hasType(r, FindingDuplicateHabitEntry) {
		t.Error("duplicate entry not flagged")
	}
	if !hasType(r, FindingOrphanHabitEntry) {
		t.Error("orphan entry not flagged")
	}
	if !hasType(r, FindingInvalidDay) {
		t.Error("malformed day not flagged")
	}
}

func TestCheck_StaleGoalProgress(t *testing.T) {
	st := state.New()
	st.Goals = append(st.Goals, models.UltimateGoal{
		ID: "g1", Title: "Learn", Progress: 90,
		Milestones: []models.Milestone{{
			ID: "m1",
			Objectives: []models.WeeklyObjective{{
				ID: "o1",
				DailyTasks: []models.DailyTask{
					{ID: "t1", Status: constants.DailyTaskCompleted},
					{ID: "t2", Status: constants.DailyTaskPending},
				},
			}},
		}},
	})

	r := Check(st)
	if !hasType(r, FindingStaleGoalProgress) {
		t.Errorf("stored 90 vs derived 50 should be flagged:\n%s", r.FormatReport())
	}

	st.Goals[0].Progress = 50
	if hasType(Check(st), FindingStaleGoalProgress) {
		t.Error("matching progress should be clean")
	}
}

func TestCheck_StreakStats(t *testing.T) {
	st := state.New()
	st.User.Stats.CurrentStreak = 10
	st.User.Stats.LongestStreak = 5

	r := Check(st)
	if !hasType(r, FindingStreakStats) {
		t.Error("current > longest not flagged")
	}

	st.User.Stats.LongestStreak = 10
	st.User.Stats.TotalDaysActive = 10
	st.User.Stats.LastPerfectDay = ""
	if !hasType(Check(st), FindingStreakStats) {
		t.Error("streak without a last perfect day not flagged")
	}

	st.User.Stats.LastPerfectDay = "2024-03-01"
	if hasType(Check(st), FindingStreakStats) {
		t.Error("consistent streak stats should be clean")
	}
}

func TestCheck_DanglingStackRef(t *testing.T) {
	st := state.New()
	st.Habits = append(st.Habits, models.Habit{ID: "h1", Name: "Read"})
	st.HabitStacks = append(st.HabitStacks, models.HabitStack{
		ID: "s1", Name: "Morning", HabitIDs: []string{"h1", "gone"},
	})

	r := Check(st)
	if !hasType(r, FindingDanglingStackRef) {
		t.Error("dangling stack reference not flagged")
	}
}

func TestCheck_LevelMismatch(t *testing.T) {
	st := state.New()
	st.User.Profile.TotalXP = 300 // level 3
	st.User.Profile.Level = 1

	r := Check(st)
	if !hasType(r, FindingLevelMismatch) {
		t.Error("level not matching XP should be flagged")
	}

	st.User.Profile.Level = 3
	st.User.Profile.Title = ""
	if hasType(Check(st), FindingLevelMismatch) {
		t.Error("empty stored title should not be flagged")
	}
}

func TestFormatReport(t *testing.T) {
	clean := &Result{}
	if clean.FormatReport() != "No problems found." {
		t.Errorf("clean report = %q", clean.FormatReport())
	}

	r := &Result{}
	r.add(FindingLevelMismatch, "example")
	out := r.FormatReport()
	if !strings.Contains(out, "1 problem(s)") || !strings.Contains(out, "level_mismatch") {
		t.Errorf("report = %q", out)
	}
}
