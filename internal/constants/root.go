package constants

// PlanTier represents a user's subscription tier
type PlanTier string

// TaskStatus represents the lifecycle state of a manual task
type TaskStatus string

// GoalStatus represents the lifecycle state of a goal or milestone
type GoalStatus string

// DailyTaskStatus represents the state of a goal-derived daily task
type DailyTaskStatus string

// Priority represents task urgency, lower rank sorts first
type Priority string

// RepeatType represents the repeat rule of a manual task
type RepeatType string

// HabitFrequency represents how often a habit is expected
type HabitFrequency string

const (
	AppName            = "ascend"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/ascend/ascend.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Notify constants
	NotifierLockfileName   = "ascend-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.ascend"

	// Plan tiers
	PlanFree     PlanTier = "free"
	PlanPro      PlanTier = "pro"
	PlanLifetime PlanTier = "lifetime"

	// Manual task statuses
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskCancelled TaskStatus = "cancelled"

	// Goal and milestone statuses
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"

	// Goal-derived daily task statuses
	DailyTaskPending   DailyTaskStatus = "pending"
	DailyTaskCompleted DailyTaskStatus = "completed"
	DailyTaskSkipped   DailyTaskStatus = "skipped"

	// Priorities
	PriorityUrgent   Priority = "urgent"
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityNone     Priority = "none"

	// Repeat rules
	RepeatNone    RepeatType = "none"
	RepeatDaily   RepeatType = "daily"
	RepeatWeekly  RepeatType = "weekly"
	RepeatMonthly RepeatType = "monthly"
	RepeatYearly  RepeatType = "yearly"
	RepeatCustom  RepeatType = "custom"

	// Habit frequencies
	FrequencyDaily    HabitFrequency = "daily"
	FrequencyWeekdays HabitFrequency = "weekdays"

	// InboxListID is the task list that unscheduled tasks surface from
	InboxListID = "inbox"
)

// XP awards
const (
	HabitCompletionXP   = 10
	PerfectDayBonusXP   = 25
	DefaultGoalTaskXP   = 15
	DefaultManualTaskXP = 10

	// Streak milestone bonuses, larger from 30 days on
	StreakMilestoneXP    = 50
	StreakMilestoneBigXP = 100
	StreakMilestoneBigAt = 30

	MaxStreakFreezes = 5

	// OverdueWindowDays caps how far back goal tasks surface as "today's"
	OverdueWindowDays = 3
)

// StreakMilestones are the streak lengths that award a bonus
var StreakMilestones = []int{7, 14, 21, 30, 60, 90, 100, 180, 365}

// PriorityRank returns the sort rank of a priority, lower sorts first.
// Unknown values rank with "none".
func PriorityRank(p Priority) int {
	switch p {
	case PriorityUrgent, PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}
