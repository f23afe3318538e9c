package models

import (
	"time"

	"github.com/julianstephens/ascend/internal/constants"
)

// RepeatRule describes how a manual task recurs after completion
type RepeatRule struct {
	Type     constants.RepeatType `json:"type"`
	Interval int                  `json:"interval,omitempty"` // default 1
	Weekdays []time.Weekday       `json:"weekdays,omitempty"` // weekly rules only
	EndDate  string               `json:"end_date,omitempty"` // YYYY-MM-DD format
}

// Subtask is a checklist item under a manual task
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a manually created to-do item. Completing a task with a non-none
// repeat rule spawns a fresh pending instance at the next occurrence.
type Task struct {
	ID          string               `json:"id"`
	ListID      string               `json:"list_id"`
	Title       string               `json:"title"`
	DueDate     string               `json:"due_date,omitempty"` // YYYY-MM-DD format
	DueTime     string               `json:"due_time,omitempty"` // HH:MM format
	Status      constants.TaskStatus `json:"status"`
	Priority    constants.Priority   `json:"priority"`
	Repeat      RepeatRule           `json:"repeat"`
	Subtasks    []Subtask            `json:"subtasks,omitempty"`
	XP          int                  `json:"xp,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
}

// TaskList groups manual tasks
type TaskList struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}
