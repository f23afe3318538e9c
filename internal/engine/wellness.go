package engine

import (
	"github.com/google/uuid"

	"github.com/julianstephens/ascend/internal/models"
)

// LogMood records a mood rating for today. Logging twice on the same day
// patches the existing entry rather than creating a second one.
func (e *Engine) LogMood(rating int, tags []string, note string) models.MoodEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}

	day := e.Today()
	for i := range e.st.MoodEntries {
		if e.st.MoodEntries[i].Day == day {
			e.st.MoodEntries[i].Rating = rating
			e.st.MoodEntries[i].Tags = tags
			e.st.MoodEntries[i].Note = note
			return e.st.MoodEntries[i]
		}
	}

	entry := models.MoodEntry{
		ID:     uuid.New().String(),
		Day:    day,
		Rating: rating,
		Tags:   tags,
		Note:   note,
	}
	e.st.MoodEntries = append(e.st.MoodEntries, entry)
	return entry
}

// AddGratitude appends a gratitude entry for today
func (e *Engine) AddGratitude(text string) models.GratitudeEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := models.GratitudeEntry{
		ID:        uuid.New().String(),
		Day:       e.Today(),
		Text:      text,
		CreatedAt: e.now().UTC(),
	}
	e.st.GratitudeEntries = append(e.st.GratitudeEntries, entry)
	return entry
}

// awardRewardToken grants a reward token, called when a streak milestone hits
func (e *Engine) awardRewardToken(reason string) {
	e.st.RewardTokens = append(e.st.RewardTokens, models.RewardToken{
		ID:        uuid.New().String(),
		Reason:    reason,
		AwardedAt: e.now().UTC(),
	})
}

// RedeemReward marks an unredeemed token spent. Returns false for unknown or
// already-redeemed ids.
func (e *Engine) RedeemReward(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.st.RewardTokens {
		if e.st.RewardTokens[i].ID == id && e.st.RewardTokens[i].RedeemedAt == nil {
			now := e.now().UTC()
			e.st.RewardTokens[i].RedeemedAt = &now
			return true
		}
	}
	return false
}

// LogPomodoro records a completed focus session and updates the aggregates
func (e *Engine) LogPomodoro(durationMin int, taskID string) models.PomodoroSession {
	e.mu.Lock()
	defer e.mu.Unlock()

	session := models.PomodoroSession{
		ID:          uuid.New().String(),
		Day:         e.Today(),
		DurationMin: durationMin,
		TaskID:      taskID,
		CompletedAt: e.now().UTC(),
	}
	e.st.Pomodoros = append(e.st.Pomodoros, session)
	e.st.FocusStats.TotalSessions++
	e.st.FocusStats.TotalMinutes += durationMin
	return session
}
