package engine

import (
	"github.com/google/uuid"

	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/notifier"
)

// AddHabitStack creates an ordered habit chain. Stacking is a plan feature:
// tiers without it get a warning and no stack, as does hitting the stack
// ceiling. Unknown habit ids are dropped from the chain.
func (e *Engine) AddHabitStack(name string, habitIDs []string) (models.HabitStack, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	limits := e.Limits()
	if !limits.HabitStacking {
		e.notify(notifier.SeverityWarning, "Habit stacking is not available on your plan.", 0)
		return models.HabitStack{}, false
	}
	if !e.withinLimit(len(e.st.HabitStacks), limits.MaxHabitStacks, "habit stacks") {
		return models.HabitStack{}, false
	}

	known := make(map[string]bool, len(e.st.Habits))
	for _, h := range e.st.Habits {
		known[h.ID] = true
	}
	var ids []string
	for _, id := range habitIDs {
		if known[id] {
			ids = append(ids, id)
		}
	}

	stack := models.HabitStack{
		ID:        uuid.New().String(),
		Name:      name,
		HabitIDs:  ids,
		CreatedAt: e.now().UTC(),
	}
	e.st.HabitStacks = append(e.st.HabitStacks, stack)
	return stack, true
}
