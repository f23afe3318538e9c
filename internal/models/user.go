package models

import "github.com/julianstephens/ascend/internal/constants"

// GamificationProfile holds the XP, level, and streak-freeze counters.
// TotalXP only decreases on an explicit habit un-completion reversal.
type GamificationProfile struct {
	XP            int    `json:"xp"`
	TotalXP       int    `json:"total_xp"`
	Level         int    `json:"level"`
	Title         string `json:"title"`
	NextLevelXP   int    `json:"next_level_xp"`
	StreakFreezes int    `json:"streak_freezes"`
}

// UserStats tracks streak and activity counters. CurrentStreak only moves
// forward on a perfect day; decay is reconciled lazily against LastPerfectDay.
type UserStats struct {
	CurrentStreak        int    `json:"current_streak"`
	LongestStreak        int    `json:"longest_streak"`
	TotalDaysActive      int    `json:"total_days_active"`
	TotalHabitsCompleted int    `json:"total_habits_completed"`
	LastPerfectDay       string `json:"last_perfect_day,omitempty"` // YYYY-MM-DD format

	// PendingCelebration holds the streak milestone awaiting a one-shot
	// celebration in the UI, 0 when none is pending.
	PendingCelebration int `json:"pending_celebration,omitempty"`
}

// User is the single local account the engine operates on
type User struct {
	ID      string              `json:"id"`
	Name    string              `json:"name,omitempty"`
	Plan    constants.PlanTier  `json:"plan"`
	Profile GamificationProfile `json:"profile"`
	Stats   UserStats           `json:"stats"`
}
