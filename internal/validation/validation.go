// Package validation checks a loaded state tree for internal inconsistencies.
// The doctor command runs these checks and reports findings without mutating
// anything.
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/engine"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/state"
)

// FindingType represents the category of a detected inconsistency
type FindingType string

const (
	FindingDuplicateHabitEntry FindingType = "duplicate_habit_entry"
	FindingOrphanHabitEntry    FindingType = "orphan_habit_entry"
	FindingStaleGoalProgress   FindingType = "stale_goal_progress"
	FindingStreakStats         FindingType = "streak_stats"
	FindingDanglingStackRef    FindingType = "dangling_stack_ref"
	FindingLevelMismatch       FindingType = "level_mismatch"
	FindingInvalidDay          FindingType = "invalid_day"
)

// Finding is a single detected inconsistency
type Finding struct {
	Type        FindingType
	Description string
	Items       []string // ids involved
}

// Result collects findings from a full state check
type Result struct {
	Findings []Finding
}

func (r *Result) HasFindings() bool {
	return len(r.Findings) > 0
}

func (r *Result) add(t FindingType, description string, items ...string) {
	r.Findings = append(r.Findings, Finding{Type: t, Description: description, Items: items})
}

// FormatReport returns a human-readable summary of all findings
func (r *Result) FormatReport() string {
	if !r.HasFindings() {
		return "No problems found."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d problem(s):\n", len(r.Findings)))
	for i, f := range r.Findings {
		sb.WriteString(fmt.Sprintf("  %d. [%s] %s\n", i+1, f.Type, f.Description))
	}
	return sb.String()
}

// Check runs every consistency check over the state
func Check(st *state.State) *Result {
	r := &Result{}
	checkHabitEntries(st, r)
	checkGoalProgress(st, r)
	checkStreakStats(st, r)
	checkStacks(st, r)
	checkLevel(st, r)
	return r
}

// checkHabitEntries verifies the one-entry-per-habit-per-day rule and that
// every entry points at a known habit.
func checkHabitEntries(st *state.State, r *Result) {
	habitIDs := make(map[string]bool, len(st.Habits))
	for _, h := range st.Habits {
		habitIDs[h.ID] = true
	}

	seen := make(map[string]string) // habit_id|day -> entry id
	for _, e := range st.HabitEntries {
		if !habitIDs[e.HabitID] {
			r.add(FindingOrphanHabitEntry,
				fmt.Sprintf("entry %s references unknown habit %s", e.ID, e.HabitID), e.ID)
		}
		if len(e.Day) != len(constants.DateFormat) {
			r.add(FindingInvalidDay,
				fmt.Sprintf("entry %s has malformed day %q", e.ID, e.Day), e.ID)
		}
		key := e.HabitID + "|" + e.Day
		if prev, ok := seen[key]; ok {
			r.add(FindingDuplicateHabitEntry,
				fmt.Sprintf("habit %s has multiple entries for %s", e.HabitID, e.Day), prev, e.ID)
			continue
		}
		seen[key] = e.ID
	}
}

// checkGoalProgress recomputes progress bottom-up and flags stored values
// that disagree with the derived ones.
func checkGoalProgress(st *state.State, r *Result) {
	for _, g := range st.Goals {
		derived := derivedGoalProgress(g)
		if g.Progress != derived {
			r.add(FindingStaleGoalProgress,
				fmt.Sprintf("goal %q stores progress %d, derived is %d", g.Title, g.Progress, derived), g.ID)
		}
	}
}

func derivedGoalProgress(g models.UltimateGoal) int {
	if len(g.Milestones) == 0 {
		return 0
	}
	sum := 0
	for _, m := range g.Milestones {
		sum += derivedMilestoneProgress(m)
	}
	return int(math.Round(float64(sum) / float64(len(g.Milestones))))
}

func derivedMilestoneProgress(m models.Milestone) int {
	if len(m.Objectives) == 0 {
		return 0
	}
	sum := 0
	for _, o := range m.Objectives {
		sum += derivedObjectiveProgress(o)
	}
	return int(math.Round(float64(sum) / float64(len(m.Objectives))))
}

func derivedObjectiveProgress(o models.WeeklyObjective) int {
	if len(o.DailyTasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range o.DailyTasks {
		if t.Status == constants.DailyTaskCompleted {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(o.DailyTasks))))
}

func checkStreakStats(st *state.State, r *Result) {
	stats := st.User.Stats
	if stats.CurrentStreak > stats.LongestStreak {
		r.add(FindingStreakStats,
			fmt.Sprintf("current streak %d exceeds longest streak %d", stats.CurrentStreak, stats.LongestStreak))
	}
	if stats.CurrentStreak > 0 && stats.LastPerfectDay == "" {
		r.add(FindingStreakStats,
			fmt.Sprintf("current streak is %d but no last perfect day is recorded", stats.CurrentStreak))
	}
	if stats.CurrentStreak > stats.TotalDaysActive {
		r.add(FindingStreakStats,
			fmt.Sprintf("current streak %d exceeds total active days %d", stats.CurrentStreak, stats.TotalDaysActive))
	}
}

func checkStacks(st *state.State, r *Result) {
	habitIDs := make(map[string]bool, len(st.Habits))
	for _, h := range st.Habits {
		habitIDs[h.ID] = true
	}
	for _, stack := range st.HabitStacks {
		for _, id := range stack.HabitIDs {
			if !habitIDs[id] {
				r.add(FindingDanglingStackRef,
					fmt.Sprintf("stack %q references unknown habit %s", stack.Name, id), stack.ID, id)
			}
		}
	}
}

func checkLevel(st *state.State, r *Result) {
	level, title, _ := engine.LevelForXP(st.User.Profile.TotalXP)
	if st.User.Profile.Level != level {
		r.add(FindingLevelMismatch,
			fmt.Sprintf("profile level %d does not match level %d derived from %d XP",
				st.User.Profile.Level, level, st.User.Profile.TotalXP))
	}
	if st.User.Profile.Title != title && st.User.Profile.Title != "" {
		r.add(FindingLevelMismatch,
			fmt.Sprintf("profile title %q does not match %q for level %d",
				st.User.Profile.Title, title, level))
	}
}
