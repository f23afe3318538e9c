// Package aiplan transforms an AI goal-decomposition result into goal
// entities with generated ids and computed dates. The AI provider itself is
// an external collaborator; this package only consumes its output shape.
package aiplan

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

// Decomposition is the wire shape produced by the goal-decomposition provider
type Decomposition struct {
	Milestones      []DecompMilestone `json:"milestones"`
	SuggestedHabits []SuggestedHabit  `json:"suggestedHabits,omitempty"`
}

type DecompMilestone struct {
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	WeeklyObjectives []DecompObjective `json:"weeklyObjectives"`
}

type DecompObjective struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DailyTasks  []DecompTask `json:"dailyTasks"`
}

type DecompTask struct {
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimatedMinutes,omitempty"`
	Priority         string `json:"priority,omitempty"`
	Difficulty       string `json:"difficulty,omitempty"`
}

type SuggestedHabit struct {
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// Parse decodes a decomposition payload, rejecting empty plans
func Parse(data []byte) (Decomposition, error) {
	var d Decomposition
	if err := json.Unmarshal(data, &d); err != nil {
		return Decomposition{}, fmt.Errorf("failed to parse decomposition: %w", err)
	}
	if len(d.Milestones) == 0 {
		return Decomposition{}, fmt.Errorf("decomposition has no milestones")
	}
	return d, nil
}

// BuildGoal turns a decomposition into a goal tree. Weekly objectives are
// laid out as consecutive weeks starting from the given date; each
// objective's daily tasks are spread across its week round-robin, and a
// milestone's target date is the end of its last week.
func BuildGoal(title, category string, d Decomposition, start time.Time) models.UltimateGoal {
	goal := models.UltimateGoal{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  category,
		Status:    constants.GoalInProgress,
		CreatedAt: time.Now().UTC(),
	}

	week := 0
	for _, dm := range d.Milestones {
		milestone := models.Milestone{
			ID:     uuid.New().String(),
			Title:  dm.Title,
			Status: constants.GoalInProgress,
		}

		for _, do := range dm.WeeklyObjectives {
			weekStart := start.AddDate(0, 0, 7*week)
			weekEnd := weekStart.AddDate(0, 0, 6)
			objective := models.WeeklyObjective{
				ID:        uuid.New().String(),
				Title:     do.Title,
				Week:      week + 1,
				StartDate: weekStart.Format(constants.DateFormat),
				EndDate:   weekEnd.Format(constants.DateFormat),
			}

			for ti, dt := range do.DailyTasks {
				taskDate := weekStart.AddDate(0, 0, ti%7)
				objective.DailyTasks = append(objective.DailyTasks, models.DailyTask{
					ID:       uuid.New().String(),
					Title:    dt.Title,
					Date:     taskDate.Format(constants.DateFormat),
					Priority: taskPriority(dt.Priority),
					Status:   constants.DailyTaskPending,
					XP:       taskXP(dt.Difficulty),
				})
			}

			milestone.Objectives = append(milestone.Objectives, objective)
			week++
		}

		if n := len(milestone.Objectives); n > 0 {
			milestone.TargetDate = milestone.Objectives[n-1].EndDate
		}
		goal.Milestones = append(goal.Milestones, milestone)
	}

	return goal
}

// Habits converts the provider's habit suggestions into habit seeds the
// caller can feed through the plan-gated habit creation path.
func Habits(d Decomposition) []models.Habit {
	var out []models.Habit
	for _, sh := range d.SuggestedHabits {
		freq := constants.FrequencyDaily
		if sh.Frequency == string(constants.FrequencyWeekdays) {
			freq = constants.FrequencyWeekdays
		}
		out = append(out, models.Habit{
			Name:      sh.Name,
			Category:  sh.Category,
			Frequency: freq,
		})
	}
	return out
}

func taskPriority(p string) constants.Priority {
	switch constants.Priority(p) {
	case constants.PriorityCritical, constants.PriorityHigh, constants.PriorityMedium, constants.PriorityLow:
		return constants.Priority(p)
	default:
		return constants.PriorityMedium
	}
}

func taskXP(difficulty string) int {
	switch difficulty {
	case "easy":
		return 10
	case "hard":
		return 25
	default:
		return constants.DefaultGoalTaskXP
	}
}
