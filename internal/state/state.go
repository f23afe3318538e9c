package state

import (
	"github.com/google/uuid"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

// CurrentVersion is the snapshot schema version written by this build
const CurrentVersion = 3

// State is the full application state tree. It is the unit of persistence:
// storage providers load and save it whole, and the engine mutates it under a
// single-writer lock.
type State struct {
	Version int `json:"version"`

	User             models.User              `json:"user"`
	Habits           []models.Habit           `json:"habits"`
	HabitEntries     []models.HabitEntry      `json:"habit_entries"`
	HabitStacks      []models.HabitStack      `json:"habit_stacks"`
	Identities       []models.Identity        `json:"identities"`
	Goals            []models.UltimateGoal    `json:"goals"`
	Tasks            []models.Task            `json:"tasks"`
	TaskLists        []models.TaskList        `json:"task_lists"`
	MoodEntries      []models.MoodEntry       `json:"mood_entries"`
	GratitudeEntries []models.GratitudeEntry  `json:"gratitude_entries"`
	RewardTokens     []models.RewardToken     `json:"reward_tokens"`
	Pomodoros        []models.PomodoroSession `json:"pomodoro_sessions"`
	FocusStats       models.FocusStats        `json:"focus_stats"`
	Wellness         models.WellnessSettings  `json:"wellness_settings"`
}

// New returns a fresh state with defaults for a new local user
func New() *State {
	s := &State{
		Version: CurrentVersion,
		User: models.User{
			ID:   uuid.New().String(),
			Plan: constants.PlanFree,
			Profile: models.GamificationProfile{
				Level: 1,
				Title: constants.LevelThresholds[0].Title,
			},
		},
	}
	s.Normalize()
	return s
}

// Normalize back-fills collections and derived fields that may be absent from
// an older persisted snapshot. Read paths rely on this running after every
// load so they never see nil collections.
func (s *State) Normalize() {
	if s.Habits == nil {
		s.Habits = []models.Habit{}
	}
	if s.HabitEntries == nil {
		s.HabitEntries = []models.HabitEntry{}
	}
	if s.HabitStacks == nil {
		s.HabitStacks = []models.HabitStack{}
	}
	if s.Identities == nil {
		s.Identities = []models.Identity{}
	}
	if s.Goals == nil {
		s.Goals = []models.UltimateGoal{}
	}
	if s.Tasks == nil {
		s.Tasks = []models.Task{}
	}
	if s.TaskLists == nil {
		s.TaskLists = []models.TaskList{}
	}
	if s.MoodEntries == nil {
		s.MoodEntries = []models.MoodEntry{}
	}
	if s.GratitudeEntries == nil {
		s.GratitudeEntries = []models.GratitudeEntry{}
	}
	if s.RewardTokens == nil {
		s.RewardTokens = []models.RewardToken{}
	}
	if s.Pomodoros == nil {
		s.Pomodoros = []models.PomodoroSession{}
	}
	if s.User.ID == "" {
		s.User.ID = uuid.New().String()
	}
	if s.User.Plan == "" {
		s.User.Plan = constants.PlanFree
	}
	if s.User.Profile.Level == 0 {
		s.User.Profile.Level = 1
		s.User.Profile.Title = constants.LevelThresholds[0].Title
	}

	// Nested goal collections from stale snapshots may also be nil
	for gi := range s.Goals {
		if s.Goals[gi].Milestones == nil {
			s.Goals[gi].Milestones = []models.Milestone{}
		}
		for mi := range s.Goals[gi].Milestones {
			m := &s.Goals[gi].Milestones[mi]
			if m.Objectives == nil {
				m.Objectives = []models.WeeklyObjective{}
			}
			for oi := range m.Objectives {
				if m.Objectives[oi].DailyTasks == nil {
					m.Objectives[oi].DailyTasks = []models.DailyTask{}
				}
			}
		}
	}

	hasInbox := false
	for _, l := range s.TaskLists {
		if l.ID == constants.InboxListID {
			hasInbox = true
			break
		}
	}
	if !hasInbox {
		s.TaskLists = append(s.TaskLists, models.TaskList{
			ID:   constants.InboxListID,
			Name: "Inbox",
		})
	}
}
