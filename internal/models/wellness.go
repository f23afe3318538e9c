package models

import "time"

// MoodEntry records one mood rating per day; a same-day log patches the
// existing entry instead of creating a second one.
type MoodEntry struct {
	ID     string   `json:"id"`
	Day    string   `json:"day"` // YYYY-MM-DD format
	Rating int      `json:"rating"`
	Tags   []string `json:"tags,omitempty"`
	Note   string   `json:"note,omitempty"`
}

type GratitudeEntry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// RewardToken is a consumable credit awarded at streak milestones
type RewardToken struct {
	ID         string     `json:"id"`
	Reason     string     `json:"reason"`
	AwardedAt  time.Time  `json:"awarded_at"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
}

// PomodoroSession records a completed focus session
type PomodoroSession struct {
	ID          string    `json:"id"`
	Day         string    `json:"day"` // YYYY-MM-DD format
	DurationMin int       `json:"duration_min"`
	TaskID      string    `json:"task_id,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// FocusStats aggregates pomodoro activity
type FocusStats struct {
	TotalSessions int `json:"total_sessions"`
	TotalMinutes  int `json:"total_minutes"`
}

// WellnessSettings controls the wellness surface
type WellnessSettings struct {
	MoodRemindersEnabled bool   `json:"mood_reminders_enabled"`
	ReminderTime         string `json:"reminder_time,omitempty"` // HH:MM format
}
