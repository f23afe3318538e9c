package engine

import (
	"fmt"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/notifier"
)

// AddXP credits XP to both the spendable and lifetime counters and re-derives
// the level from the threshold table. Crossing into a higher level emits a
// level-up notification carrying the XP gained.
func (e *Engine) AddXP(amount int, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addXP(amount, reason)
}

// addXP is the lock-free form for callers already holding the engine lock
func (e *Engine) addXP(amount int, reason string) {
	if amount <= 0 {
		return
	}

	p := &e.st.User.Profile
	before := p.Level

	p.XP += amount
	p.TotalXP += amount
	e.applyLevel()

	logger.Debug("xp awarded", "amount", amount, "reason", reason, "total", p.TotalXP)

	if p.Level > before {
		e.notify(notifier.SeverityCelebration,
			fmt.Sprintf("Level up! You reached level %d: %s", p.Level, p.Title), amount)
	}
}

// removeXP debits XP, flooring both counters at 0, and re-derives the level.
// Levels may regress here; no notification is emitted for a level-down.
func (e *Engine) removeXP(amount int, reason string) {
	if amount <= 0 {
		return
	}

	p := &e.st.User.Profile
	p.XP -= amount
	if p.XP < 0 {
		p.XP = 0
	}
	p.TotalXP -= amount
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	e.applyLevel()

	logger.Debug("xp reversed", "amount", amount, "reason", reason, "total", p.TotalXP)
}

// applyLevel re-derives level, title, and next-level XP from total XP
func (e *Engine) applyLevel() {
	p := &e.st.User.Profile
	p.Level, p.Title, p.NextLevelXP = LevelForXP(p.TotalXP)
}

// LevelForXP scans the ascending threshold table and returns the highest
// level whose requirement the total XP meets, plus its title and the XP
// needed for the next level. Beyond the table, levels continue at a fixed
// step with the final table title.
func LevelForXP(totalXP int) (level int, title string, nextXP int) {
	table := constants.LevelThresholds
	level = table[0].Level
	title = table[0].Title

	for _, t := range table {
		if totalXP >= t.XP {
			level = t.Level
			title = t.Title
		}
	}

	last := table[len(table)-1]
	if level == last.Level {
		extra := (totalXP - last.XP) / constants.XPPerLevelBeyondTable
		level += extra
		nextXP = last.XP + (extra+1)*constants.XPPerLevelBeyondTable
		return level, title, nextXP
	}

	for _, t := range table {
		if t.Level == level+1 {
			nextXP = t.XP
			break
		}
	}
	return level, title, nextXP
}

// UseStreakFreeze consumes one streak freeze if any remain. Returns false,
// with no side effects, when the counter is empty.
func (e *Engine) UseStreakFreeze() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.useStreakFreeze()
}

func (e *Engine) useStreakFreeze() bool {
	p := &e.st.User.Profile
	if p.StreakFreezes <= 0 {
		return false
	}
	p.StreakFreezes--
	return true
}

// AwardStreakFreeze grants one streak freeze up to the cap
func (e *Engine) AwardStreakFreeze() {
	e.mu.Lock()
	defer e.mu.Unlock()
	p := &e.st.User.Profile
	if p.StreakFreezes < constants.MaxStreakFreezes {
		p.StreakFreezes++
	}
}

// ConsumeCelebration returns the streak milestone awaiting celebration and
// clears the flag, so the UI fires it exactly once. Returns 0 when none is
// pending.
func (e *Engine) ConsumeCelebration() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	pending := e.st.User.Stats.PendingCelebration
	e.st.User.Stats.PendingCelebration = 0
	return pending
}
