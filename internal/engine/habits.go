package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/notifier"
	"github.com/julianstephens/ascend/internal/utils"
)

// AddHabit creates a habit subject to the plan ceiling. Returns false with a
// warning notification (and no new habit) when the ceiling is hit.
func (e *Engine) AddHabit(name, category string, freq constants.HabitFrequency, weekdays []time.Weekday) (models.Habit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.withinLimit(e.liveHabitCount(), e.Limits().MaxHabits, "habits") {
		return models.Habit{}, false
	}

	if freq == "" {
		freq = constants.FrequencyDaily
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    e.st.User.ID,
		Name:      name,
		Category:  category,
		Frequency: freq,
		Weekdays:  weekdays,
		IsActive:  true,
		Order:     len(e.st.Habits),
		CreatedAt: e.now().UTC(),
	}
	e.st.Habits = append(e.st.Habits, habit)
	return habit, true
}

// ArchiveHabit soft-removes a habit from the active set; its entries remain
func (e *Engine) ArchiveHabit(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.st.Habits {
		if e.st.Habits[i].ID == id {
			e.st.Habits[i].Archived = true
			e.st.Habits[i].IsActive = false
			return true
		}
	}
	return false
}

// UnarchiveHabit returns an archived habit to the active set, subject to the
// plan ceiling.
func (e *Engine) UnarchiveHabit(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.st.Habits {
		if e.st.Habits[i].ID == id && e.st.Habits[i].Archived {
			if !e.withinLimit(e.liveHabitCount(), e.Limits().MaxHabits, "habits") {
				return false
			}
			e.st.Habits[i].Archived = false
			e.st.Habits[i].IsActive = true
			return true
		}
	}
	return false
}

// DeleteHabit removes a habit. A habit with recorded entries is archived
// instead unless force is set, in which case its entries are removed with it.
func (e *Engine) DeleteHabit(id string, force bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i := range e.st.Habits {
		if e.st.Habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	hasEntries := false
	for _, entry := range e.st.HabitEntries {
		if entry.HabitID == id {
			hasEntries = true
			break
		}
	}

	if hasEntries && !force {
		e.st.Habits[idx].Archived = true
		e.st.Habits[idx].IsActive = false
		return true
	}

	e.st.Habits = append(e.st.Habits[:idx], e.st.Habits[idx+1:]...)
	if hasEntries {
		kept := e.st.HabitEntries[:0]
		for _, entry := range e.st.HabitEntries {
			if entry.HabitID != id {
				kept = append(kept, entry)
			}
		}
		e.st.HabitEntries = kept
	}
	return true
}

// ToggleHabitEntry flips the completion record for (habitID, day), creating
// it on first toggle. Transitions to completed award XP and run the
// perfect-day check; transitions back subtract the same XP. Entries may be
// recorded for inactive habits; only the perfect-day denominator filters by
// active and non-archived. An unknown habit id is a silent no-op.
func (e *Engine) ToggleHabitEntry(habitID, day string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if day == "" {
		day = e.Today()
	}
	if !utils.ValidateDayFormat(day) {
		logger.Debug("habit toggle skipped, malformed day", "day", day)
		return
	}

	// A stale id (habit deleted elsewhere) is skipped, never recorded
	known := false
	for i := range e.st.Habits {
		if e.st.Habits[i].ID == habitID {
			known = true
			break
		}
	}
	if !known {
		logger.Debug("habit toggle skipped, unknown habit", "habit_id", habitID)
		return
	}

	for i := range e.st.HabitEntries {
		entry := &e.st.HabitEntries[i]
		if entry.HabitID != habitID || entry.Day != day {
			continue
		}
		if entry.Completed {
			entry.Completed = false
			entry.CompletedAt = nil
			e.removeXP(constants.HabitCompletionXP, "habit uncompleted")
			e.updateHabitStreak(habitID, day)
			return
		}
		now := e.now().UTC()
		entry.Completed = true
		entry.CompletedAt = &now
		e.addXP(constants.HabitCompletionXP, "habit completed")
		e.updateHabitStreak(habitID, day)
		e.checkPerfectDay(day)
		return
	}

	now := e.now().UTC()
	e.st.HabitEntries = append(e.st.HabitEntries, models.HabitEntry{
		ID:          uuid.New().String(),
		HabitID:     habitID,
		Day:         day,
		Completed:   true,
		CompletedAt: &now,
	})
	e.addXP(constants.HabitCompletionXP, "habit completed")
	e.updateHabitStreak(habitID, day)
	e.checkPerfectDay(day)
}

// updateHabitStreak recomputes the habit's own consecutive-day run ending at
// the toggled day. The best streak never decreases.
func (e *Engine) updateHabitStreak(habitID, day string) {
	idx := -1
	for i := range e.st.Habits {
		if e.st.Habits[i].ID == habitID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	start := day
	if entry, ok := e.habitEntryFor(habitID, day); !ok || !entry.Completed {
		start = utils.AddDays(day, -1)
	}

	streak := 0
	for d := start; ; d = utils.AddDays(d, -1) {
		entry, ok := e.habitEntryFor(habitID, d)
		if !ok || !entry.Completed {
			break
		}
		streak++
	}

	h := &e.st.Habits[idx]
	h.Streak = streak
	if streak > h.BestStreak {
		h.BestStreak = streak
	}
}

// checkPerfectDay runs after any habit entry transitions to completed. When
// every active, non-archived habit has a completed entry for the day, the
// streak rolls forward and bonuses are awarded.
func (e *Engine) checkPerfectDay(day string) {
	active := 0
	for _, h := range e.st.Habits {
		if h.IsActive && !h.Archived {
			active++
		}
	}
	if active == 0 {
		return
	}

	done := 0
	for _, entry := range e.st.HabitEntries {
		if entry.Day != day || !entry.Completed {
			continue
		}
		for _, h := range e.st.Habits {
			if h.ID == entry.HabitID && h.IsActive && !h.Archived {
				done++
				break
			}
		}
	}
	if done < active {
		return
	}

	e.reconcileStreak(day)

	stats := &e.st.User.Stats
	if stats.LastPerfectDay == day {
		// Already counted; completing after an un-complete must not double-roll
		return
	}

	e.addXP(constants.PerfectDayBonusXP, "perfect day")
	e.notify(notifier.SeverityCelebration,
		fmt.Sprintf("Perfect day! All %d habits completed.", active), constants.PerfectDayBonusXP)

	stats.CurrentStreak++
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.TotalDaysActive++
	stats.TotalHabitsCompleted++
	stats.LastPerfectDay = day

	for _, milestone := range constants.StreakMilestones {
		if stats.CurrentStreak != milestone {
			continue
		}
		bonus := constants.StreakMilestoneXP
		if milestone >= constants.StreakMilestoneBigAt {
			bonus = constants.StreakMilestoneBigXP
		}
		e.addXP(bonus, fmt.Sprintf("%d-day streak", milestone))
		e.awardRewardToken(fmt.Sprintf("%d-day streak", milestone))
		stats.PendingCelebration = milestone
		e.notify(notifier.SeverityCelebration,
			fmt.Sprintf("%d-day streak! Keep it going.", milestone), bonus)
		break
	}
}

// reconcileStreak resolves missed days lazily, before a new perfect day is
// counted. Each fully missed calendar day between the last perfect day and
// the day being completed consumes one streak freeze; once freezes run out,
// the current streak resets. There is no scheduled sweep.
func (e *Engine) reconcileStreak(day string) {
	stats := &e.st.User.Stats
	if stats.CurrentStreak == 0 || stats.LastPerfectDay == "" {
		return
	}

	missed := utils.DaysBetween(stats.LastPerfectDay, day) - 1
	if missed <= 0 {
		return
	}

	for i := 0; i < missed; i++ {
		if e.useStreakFreeze() {
			logger.Info("streak freeze consumed", "missed_day", utils.AddDays(stats.LastPerfectDay, i+1))
			continue
		}
		logger.Info("streak broken", "previous", stats.CurrentStreak, "missed_days", missed-i)
		stats.CurrentStreak = 0
		return
	}

	e.notify(notifier.SeverityInfo,
		fmt.Sprintf("Streak protected: %d freeze(s) covered your missed day(s).", missed), 0)
}

// habitEntryFor returns the entry for (habitID, day) if one exists
func (e *Engine) habitEntryFor(habitID, day string) (models.HabitEntry, bool) {
	for _, entry := range e.st.HabitEntries {
		if entry.HabitID == habitID && entry.Day == day {
			return entry, true
		}
	}
	return models.HabitEntry{}, false
}
