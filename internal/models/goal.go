package models

import (
	"time"

	"github.com/julianstephens/ascend/internal/constants"
)

// UltimateGoal is a long-term goal decomposed into milestones, weekly
// objectives, and daily tasks. Progress percentages are derived bottom-up and
// recomputed whenever a leaf task changes.
type UltimateGoal struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Category   string               `json:"category,omitempty"`
	Status     constants.GoalStatus `json:"status"`
	Milestones []Milestone          `json:"milestones"`
	Progress   int                  `json:"progress"` // derived, 0-100
	CreatedAt  time.Time            `json:"created_at"`
}

type Milestone struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	TargetDate string               `json:"target_date,omitempty"` // YYYY-MM-DD format
	Status     constants.GoalStatus `json:"status"`
	Objectives []WeeklyObjective    `json:"objectives"`
	Progress   int                  `json:"progress"` // derived, average of objectives
}

type WeeklyObjective struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Week       int         `json:"week"`
	StartDate  string      `json:"start_date,omitempty"` // YYYY-MM-DD format
	EndDate    string      `json:"end_date,omitempty"`   // YYYY-MM-DD format
	DailyTasks []DailyTask `json:"daily_tasks"`
	Progress   int         `json:"progress"` // derived, completed/total
}

type DailyTask struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Date        string                    `json:"date"` // YYYY-MM-DD format
	Priority    constants.Priority        `json:"priority"`
	Status      constants.DailyTaskStatus `json:"status"`
	XP          int                       `json:"xp,omitempty"`
	CompletedAt *time.Time                `json:"completed_at,omitempty"`
}
