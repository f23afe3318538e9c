package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/models"
)

// TaskSource identifies which engine owns a unified task
type TaskSource string

const (
	SourceHabit  TaskSource = "habit"
	SourceGoal   TaskSource = "goal"
	SourceManual TaskSource = "manual"
)

// TaskRef is the typed address of a unified task: the source discriminant
// plus the originating entity id, carried alongside the synthesized display
// id so dispatch never has to re-parse strings. Goal refs also carry the full
// tree path.
type TaskRef struct {
	Source   TaskSource
	SourceID string
	Day      string // habit refs only: the entry date
	Path     GoalPath
}

// GoalPath locates a daily task inside the goal tree
type GoalPath struct {
	GoalID      string
	MilestoneID string
	ObjectiveID string
}

// UnifiedTask is a read-only projection merging habit, goal, and manual tasks
// into one list. It is rebuilt on every read and never persisted.
type UnifiedTask struct {
	ID        string             `json:"id"`
	Ref       TaskRef            `json:"-"`
	Source    TaskSource         `json:"source"`
	Title     string             `json:"title"`
	Day       string             `json:"day,omitempty"`
	Priority  constants.Priority `json:"priority"`
	XP        int                `json:"xp"`
	Completed bool               `json:"completed"`
}

// DisplayID synthesizes the external id contract: {source}-{sourceId} with a
// trailing -{date} for habit entries.
func (r TaskRef) DisplayID() string {
	if r.Source == SourceHabit {
		return fmt.Sprintf("%s-%s-%s", r.Source, r.SourceID, r.Day)
	}
	return fmt.Sprintf("%s-%s", r.Source, r.SourceID)
}

// TodayTasks merges today's habits, due goal tasks (up to three days
// overdue), and manual tasks that are due, overdue, or sitting unscheduled in
// the inbox. Completed tasks sort last; the rest sort by priority rank.
func (e *Engine) TodayTasks() []UnifiedTask {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := e.Today()
	var out []UnifiedTask

	for _, h := range e.st.Habits {
		if !h.IsActive || h.Archived {
			continue
		}
		entry, _ := e.habitEntryFor(h.ID, day)
		ref := TaskRef{Source: SourceHabit, SourceID: h.ID, Day: day}
		out = append(out, UnifiedTask{
			ID:        ref.DisplayID(),
			Ref:       ref,
			Source:    SourceHabit,
			Title:     h.Name,
			Day:       day,
			Priority:  constants.PriorityMedium,
			XP:        constants.HabitCompletionXP,
			Completed: entry.Completed,
		})
	}

	for _, v := range e.goalTasksInWindow(day, constants.OverdueWindowDays) {
		out = append(out, goalUnified(v))
	}

	for _, t := range e.st.Tasks {
		if t.Status == constants.TaskCancelled {
			continue
		}
		due := t.DueDate == day
		overdue := t.DueDate != "" && t.DueDate < day && t.Status != constants.TaskCompleted
		inbox := t.DueDate == "" && t.ListID == constants.InboxListID
		if !due && !overdue && !inbox {
			continue
		}
		out = append(out, manualUnified(t))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		return constants.PriorityRank(out[i].Priority) < constants.PriorityRank(out[j].Priority)
	})
	return out
}

// AllTasks merges the same three sources without the date window: every
// active habit (dated today), every task of every in-progress goal, and every
// non-cancelled manual task. Completed tasks sort last, then by date with
// undated last, then by priority.
func (e *Engine) AllTasks() []UnifiedTask {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := e.Today()
	var out []UnifiedTask

	for _, h := range e.st.Habits {
		if !h.IsActive || h.Archived {
			continue
		}
		entry, _ := e.habitEntryFor(h.ID, day)
		ref := TaskRef{Source: SourceHabit, SourceID: h.ID, Day: day}
		out = append(out, UnifiedTask{
			ID:        ref.DisplayID(),
			Ref:       ref,
			Source:    SourceHabit,
			Title:     h.Name,
			Day:       day,
			Priority:  constants.PriorityMedium,
			XP:        constants.HabitCompletionXP,
			Completed: entry.Completed,
		})
	}

	for _, v := range e.goalTasksInWindow(day, -1) {
		out = append(out, goalUnified(v))
	}

	for _, t := range e.st.Tasks {
		if t.Status == constants.TaskCancelled {
			continue
		}
		out = append(out, manualUnified(t))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		di, dj := out[i].Day, out[j].Day
		if di != dj {
			if di == "" {
				return false
			}
			if dj == "" {
				return true
			}
			return di < dj
		}
		return constants.PriorityRank(out[i].Priority) < constants.PriorityRank(out[j].Priority)
	})
	return out
}

func goalUnified(v GoalTaskView) UnifiedTask {
	ref := TaskRef{
		Source:   SourceGoal,
		SourceID: v.Task.ID,
		Path:     GoalPath{GoalID: v.GoalID, MilestoneID: v.MilestoneID, ObjectiveID: v.ObjectiveID},
	}
	xp := v.Task.XP
	if xp <= 0 {
		xp = constants.DefaultGoalTaskXP
	}
	return UnifiedTask{
		ID:        ref.DisplayID(),
		Ref:       ref,
		Source:    SourceGoal,
		Title:     v.Task.Title,
		Day:       v.Task.Date,
		Priority:  v.Task.Priority,
		XP:        xp,
		Completed: v.Task.Status == constants.DailyTaskCompleted,
	}
}

func manualUnified(t models.Task) UnifiedTask {
	ref := TaskRef{Source: SourceManual, SourceID: t.ID}
	xp := t.XP
	if xp <= 0 {
		xp = constants.DefaultManualTaskXP
	}
	return UnifiedTask{
		ID:        ref.DisplayID(),
		Ref:       ref,
		Source:    SourceManual,
		Title:     t.Title,
		Day:       t.DueDate,
		Priority:  t.Priority,
		XP:        xp,
		Completed: t.Status == constants.TaskCompleted,
	}
}

// CompleteUnified routes a completion to the engine that owns the referenced
// task. Habit refs toggle the entry for the ref's day; goal refs complete the
// task at the carried path; manual refs toggle the task. Stale refs no-op.
func (e *Engine) CompleteUnified(ref TaskRef) bool {
	switch ref.Source {
	case SourceHabit:
		e.ToggleHabitEntry(ref.SourceID, ref.Day)
		return true
	case SourceGoal:
		e.mu.Lock()
		defer e.mu.Unlock()
		p := ref.Path
		if p.GoalID == "" {
			p = e.locateGoalTask(ref.SourceID)
		}
		return e.completeGoalTask(p.GoalID, p.MilestoneID, p.ObjectiveID, ref.SourceID)
	case SourceManual:
		return e.ToggleTask(ref.SourceID)
	default:
		logger.Warn("unified completion with unknown source", "source", ref.Source)
		return false
	}
}

// SkipUnified marks a goal task skipped or a manual task cancelled. Habit
// refs have no skip semantics.
func (e *Engine) SkipUnified(ref TaskRef) bool {
	switch ref.Source {
	case SourceGoal:
		e.mu.Lock()
		defer e.mu.Unlock()
		p := ref.Path
		if p.GoalID == "" {
			p = e.locateGoalTask(ref.SourceID)
		}
		return e.skipGoalTask(p.GoalID, p.MilestoneID, p.ObjectiveID, ref.SourceID)
	case SourceManual:
		return e.CancelTask(ref.SourceID)
	default:
		return false
	}
}

// CompleteUnifiedByID accepts the synthesized display id, the contract used
// by external callers that only hold the string form.
func (e *Engine) CompleteUnifiedByID(id string) bool {
	ref, err := ParseDisplayID(id)
	if err != nil {
		logger.Warn("unparseable unified task id", "id", id, "error", err)
		return false
	}
	return e.CompleteUnified(ref)
}

// SkipUnifiedByID is the display-id form of SkipUnified
func (e *Engine) SkipUnifiedByID(id string) bool {
	ref, err := ParseDisplayID(id)
	if err != nil {
		return false
	}
	return e.SkipUnified(ref)
}

// ParseDisplayID parses the {source}-{sourceId}[-{date}] id back into a
// typed ref. Habit ids carry a trailing date segment; goal refs come back
// without a path and are located by a tree search at dispatch time.
func ParseDisplayID(id string) (TaskRef, error) {
	source, rest, ok := strings.Cut(id, "-")
	if !ok || rest == "" {
		return TaskRef{}, fmt.Errorf("malformed unified task id: %q", id)
	}

	switch TaskSource(source) {
	case SourceHabit:
		// The trailing date is the last three dash segments (YYYY-MM-DD)
		parts := strings.Split(rest, "-")
		if len(parts) < 4 {
			return TaskRef{}, fmt.Errorf("habit task id missing date: %q", id)
		}
		day := strings.Join(parts[len(parts)-3:], "-")
		sourceID := strings.Join(parts[:len(parts)-3], "-")
		if sourceID == "" {
			return TaskRef{}, fmt.Errorf("habit task id missing habit id: %q", id)
		}
		return TaskRef{Source: SourceHabit, SourceID: sourceID, Day: day}, nil
	case SourceGoal:
		return TaskRef{Source: SourceGoal, SourceID: rest}, nil
	case SourceManual:
		return TaskRef{Source: SourceManual, SourceID: rest}, nil
	default:
		return TaskRef{}, fmt.Errorf("unknown task source: %q", source)
	}
}

// locateGoalTask linear-searches every in-progress goal for a daily task id
// and returns its path. Used when only the display id was provided.
func (e *Engine) locateGoalTask(taskID string) GoalPath {
	for _, g := range e.st.Goals {
		if g.Status != constants.GoalInProgress {
			continue
		}
		for _, m := range g.Milestones {
			for _, o := range m.Objectives {
				for _, t := range o.DailyTasks {
					if t.ID == taskID {
						return GoalPath{GoalID: g.ID, MilestoneID: m.ID, ObjectiveID: o.ID}
					}
				}
			}
		}
	}
	return GoalPath{}
}
