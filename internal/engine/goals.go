package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/notifier"
	"github.com/julianstephens/ascend/internal/utils"
)

// AddGoal stores a goal subject to the plan ceiling. Returns false with a
// warning notification when the ceiling is hit.
func (e *Engine) AddGoal(goal models.UltimateGoal) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, g := range e.st.Goals {
		if g.Status != constants.GoalCompleted {
			count++
		}
	}
	if !e.withinLimit(count, e.Limits().MaxGoals, "goals") {
		return false
	}

	if goal.Status == "" {
		goal.Status = constants.GoalInProgress
	}
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = e.now().UTC()
	}
	e.st.Goals = append(e.st.Goals, goal)
	return true
}

// GoalTaskView is a daily task located by its full path in the goal tree
type GoalTaskView struct {
	GoalID      string
	MilestoneID string
	ObjectiveID string
	Task        models.DailyTask
}

// TodaysGoalTasks walks every in-progress goal and returns the daily tasks
// scheduled between three days ago and today, excluding completed ones,
// sorted by priority rank. Ties keep discovery order.
func (e *Engine) TodaysGoalTasks() []GoalTaskView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.goalTasksInWindow(e.Today(), constants.OverdueWindowDays)
}

// goalTasksInWindow collects non-completed tasks dated within overdueDays
// before the given day, inclusive. A negative overdueDays removes the window
// entirely.
func (e *Engine) goalTasksInWindow(day string, overdueDays int) []GoalTaskView {
	var out []GoalTaskView
	earliest := ""
	if overdueDays >= 0 {
		earliest = utils.AddDays(day, -overdueDays)
	}

	for _, g := range e.st.Goals {
		if g.Status != constants.GoalInProgress {
			continue
		}
		for _, m := range g.Milestones {
			for _, o := range m.Objectives {
				for _, t := range o.DailyTasks {
					if t.Status == constants.DailyTaskCompleted {
						continue
					}
					if overdueDays >= 0 && (t.Date < earliest || t.Date > day) {
						continue
					}
					out = append(out, GoalTaskView{
						GoalID:      g.ID,
						MilestoneID: m.ID,
						ObjectiveID: o.ID,
						Task:        t,
					})
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return constants.PriorityRank(out[i].Task.Priority) < constants.PriorityRank(out[j].Task.Priority)
	})
	return out
}

// CompleteGoalTask marks the task at the four-level path completed and
// recomputes progress bottom-up: objective, then milestone, then goal, with
// status flips at 100%. The task's XP (default 15) is awarded after the tree
// is updated. A stale path is a silent no-op.
func (e *Engine) CompleteGoalTask(goalID, milestoneID, objectiveID, taskID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completeGoalTask(goalID, milestoneID, objectiveID, taskID)
}

func (e *Engine) completeGoalTask(goalID, milestoneID, objectiveID, taskID string) bool {
	g := e.findGoal(goalID)
	if g == nil {
		return false
	}

	var task *models.DailyTask
	for mi := range g.Milestones {
		m := &g.Milestones[mi]
		if m.ID != milestoneID {
			continue
		}
		for oi := range m.Objectives {
			o := &m.Objectives[oi]
			if o.ID != objectiveID {
				continue
			}
			for ti := range o.DailyTasks {
				if o.DailyTasks[ti].ID == taskID {
					task = &o.DailyTasks[ti]
					break
				}
			}
		}
	}
	if task == nil || task.Status == constants.DailyTaskCompleted {
		return false
	}

	now := e.now().UTC()
	task.Status = constants.DailyTaskCompleted
	task.CompletedAt = &now
	recomputeGoal(g)

	xp := task.XP
	if xp <= 0 {
		xp = constants.DefaultGoalTaskXP
	}
	e.addXP(xp, "goal task completed")
	e.notify(notifier.SeveritySuccess, fmt.Sprintf("Task done: %s", task.Title), xp)
	return true
}

// SkipGoalTask marks the task skipped in place. Skips do not trigger a
// progress recompute.
func (e *Engine) SkipGoalTask(goalID, milestoneID, objectiveID, taskID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.skipGoalTask(goalID, milestoneID, objectiveID, taskID)
}

func (e *Engine) skipGoalTask(goalID, milestoneID, objectiveID, taskID string) bool {
	g := e.findGoal(goalID)
	if g == nil {
		return false
	}
	for mi := range g.Milestones {
		if g.Milestones[mi].ID != milestoneID {
			continue
		}
		for oi := range g.Milestones[mi].Objectives {
			o := &g.Milestones[mi].Objectives[oi]
			if o.ID != objectiveID {
				continue
			}
			for ti := range o.DailyTasks {
				if o.DailyTasks[ti].ID == taskID {
					o.DailyTasks[ti].Status = constants.DailyTaskSkipped
					return true
				}
			}
		}
	}
	return false
}

func (e *Engine) findGoal(id string) *models.UltimateGoal {
	for i := range e.st.Goals {
		if e.st.Goals[i].ID == id {
			return &e.st.Goals[i]
		}
	}
	return nil
}

// recomputeGoal derives every progress percentage in the tree bottom-up.
// Percentages are never set independently; a milestone or goal reaching 100
// auto-transitions to completed.
func recomputeGoal(g *models.UltimateGoal) {
	for mi := range g.Milestones {
		m := &g.Milestones[mi]
		for oi := range m.Objectives {
			o := &m.Objectives[oi]
			o.Progress = objectiveProgress(o)
		}
		m.Progress = averageProgress(objectivePercents(m.Objectives))
		if m.Progress == 100 {
			m.Status = constants.GoalCompleted
		}
	}
	g.Progress = averageProgress(milestonePercents(g.Milestones))
	if g.Progress == 100 {
		g.Status = constants.GoalCompleted
	}
}

func objectiveProgress(o *models.WeeklyObjective) int {
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

func objectivePercents(objectives []models.WeeklyObjective) []int {
	out := make([]int, len(objectives))
	for i, o := range objectives {
		out[i] = o.Progress
	}
	return out
}

func milestonePercents(milestones []models.Milestone) []int {
	out := make([]int, len(milestones))
	for i, m := range milestones {
		out[i] = m.Progress
	}
	return out
}

// averageProgress is the unweighted average, rounded to the nearest integer
func averageProgress(percents []int) int {
	if len(percents) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percents {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(percents))))
}
