package engine

import (
	"fmt"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/notifier"
)

// Unlimited marks a ceiling with no cap
const Unlimited = -1

// PlanLimits are the entity ceilings and feature flags for a subscription tier
type PlanLimits struct {
	MaxHabits      int
	MaxGoals       int
	MaxHabitStacks int
	HabitStacking  bool
}

var planLimits = map[constants.PlanTier]PlanLimits{
	constants.PlanFree: {
		MaxHabits:      5,
		MaxGoals:       2,
		MaxHabitStacks: 0,
		HabitStacking:  false,
	},
	constants.PlanPro: {
		MaxHabits:      50,
		MaxGoals:       20,
		MaxHabitStacks: 10,
		HabitStacking:  true,
	},
	constants.PlanLifetime: {
		MaxHabits:      Unlimited,
		MaxGoals:       Unlimited,
		MaxHabitStacks: Unlimited,
		HabitStacking:  true,
	},
}

// LimitsFor returns the ceilings for a plan tier, defaulting unknown tiers to
// the free plan.
func LimitsFor(tier constants.PlanTier) PlanLimits {
	if l, ok := planLimits[tier]; ok {
		return l
	}
	return planLimits[constants.PlanFree]
}

// Limits returns the ceilings for the current user's plan
func (e *Engine) Limits() PlanLimits {
	return LimitsFor(e.st.User.Plan)
}

// withinLimit reports whether another entity may be created under the given
// ceiling. A limit hit is not an error: the caller no-ops and the user gets a
// warning notification from here.
func (e *Engine) withinLimit(count, max int, entity string) bool {
	if max == Unlimited || count < max {
		return true
	}
	e.notify(notifier.SeverityWarning,
		fmt.Sprintf("Your %s plan allows up to %d %s. Upgrade to add more.", e.st.User.Plan, max, entity), 0)
	return false
}

// liveHabitCount counts habits that count against the plan ceiling
func (e *Engine) liveHabitCount() int {
	count := 0
	for _, h := range e.st.Habits {
		if !h.Archived {
			count++
		}
	}
	return count
}
