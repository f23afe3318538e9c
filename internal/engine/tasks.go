package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/notifier"
	"github.com/julianstephens/ascend/internal/utils"
)

// AddTask stores a manual task. Manual tasks are not plan-gated.
func (e *Engine) AddTask(task models.Task) models.Task {
	e.mu.Lock()
	defer e.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.ListID == "" {
		task.ListID = constants.InboxListID
	}
	if task.Status == "" {
		task.Status = constants.TaskPending
	}
	if task.Priority == "" {
		task.Priority = constants.PriorityNone
	}
	if task.Repeat.Type == "" {
		task.Repeat.Type = constants.RepeatNone
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = e.now().UTC()
	}
	e.st.Tasks = append(e.st.Tasks, task)
	return task
}

// ToggleTask flips a manual task between pending and completed. A transition
// to completed awards the task's XP, and a task with a repeat rule spawns a
// fresh pending instance at the next occurrence. A missing id is a silent
// no-op.
func (e *Engine) ToggleTask(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggleTask(id)
}

func (e *Engine) toggleTask(id string) bool {
	for i := range e.st.Tasks {
		task := &e.st.Tasks[i]
		if task.ID != id {
			continue
		}

		switch task.Status {
		case constants.TaskCompleted:
			task.Status = constants.TaskPending
			task.CompletedAt = nil
			return true
		case constants.TaskPending:
			now := e.now().UTC()
			task.Status = constants.TaskCompleted
			task.CompletedAt = &now

			xp := task.XP
			if xp <= 0 {
				xp = constants.DefaultManualTaskXP
			}
			e.addXP(xp, "task completed")
			e.notify(notifier.SeveritySuccess, fmt.Sprintf("Task done: %s", task.Title), xp)

			if task.Repeat.Type != constants.RepeatNone {
				// task points into the slice; spawning appends, so copy first
				e.spawnNextOccurrence(*task)
			}
			return true
		default:
			return false
		}
	}
	return false
}

// spawnNextOccurrence clones a completed recurring task into a new pending
// instance due at the next occurrence. No instance is created once the rule's
// end date is passed.
func (e *Engine) spawnNextOccurrence(task models.Task) {
	from := e.now()
	if task.DueDate != "" {
		if parsed, err := utils.ParseDay(task.DueDate); err == nil {
			from = parsed
		}
	}

	next, ok := utils.NextOccurrence(task.Repeat, from)
	if !ok {
		return
	}

	// A completed->pending->completed flip must not stack a second clone
	due := utils.FormatDay(next)
	for _, existing := range e.st.Tasks {
		if existing.Status == constants.TaskPending && existing.Title == task.Title &&
			existing.DueDate == due && existing.Repeat.Type == task.Repeat.Type {
			return
		}
	}

	clone := task
	clone.ID = uuid.New().String()
	clone.Status = constants.TaskPending
	clone.DueDate = utils.FormatDay(next)
	clone.CreatedAt = e.now().UTC()
	clone.CompletedAt = nil
	clone.Subtasks = make([]models.Subtask, len(task.Subtasks))
	for i, sub := range task.Subtasks {
		clone.Subtasks[i] = models.Subtask{ID: uuid.New().String(), Title: sub.Title}
	}
	e.st.Tasks = append(e.st.Tasks, clone)
}

// CancelTask marks a manual task cancelled, removing it from every view
func (e *Engine) CancelTask(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelTask(id)
}

func (e *Engine) cancelTask(id string) bool {
	for i := range e.st.Tasks {
		if e.st.Tasks[i].ID == id {
			e.st.Tasks[i].Status = constants.TaskCancelled
			return true
		}
	}
	return false
}
