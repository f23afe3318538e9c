package models

import (
	"time"

	"github.com/julianstephens/ascend/internal/constants"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID          string                   `json:"id"`
	UserID      string                   `json:"user_id,omitempty"`
	Name        string                   `json:"name"`
	Category    string                   `json:"category,omitempty"`
	Frequency   constants.HabitFrequency `json:"frequency"`
	Weekdays    []time.Weekday           `json:"weekdays,omitempty"` // for explicit weekday frequency
	MonthlyGoal int                      `json:"monthly_goal,omitempty"`
	Streak      int                      `json:"streak"`
	BestStreak  int                      `json:"best_streak"`
	IsActive    bool                     `json:"is_active"`
	Archived    bool                     `json:"archived"`
	Order       int                      `json:"order"`
	CreatedAt   time.Time                `json:"created_at"`
}

// HabitEntry represents a single day's completion record for a habit.
// At most one entry exists per (habit_id, day) pair.
type HabitEntry struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habit_id"`
	Day         string     `json:"day"` // YYYY-MM-DD format
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HabitStack is an ordered chain of habits performed together
type HabitStack struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HabitIDs  []string  `json:"habit_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is a self-descriptor the user is building habits toward
type Identity struct {
	ID        string    `json:"id"`
	Statement string    `json:"statement"`
	CreatedAt time.Time `json:"created_at"`
}
