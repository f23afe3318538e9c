package cli

import (
	"fmt"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/engine"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	profile := ctx.State.User.Profile
	stats := ctx.State.User.Stats

	fmt.Println(titleStyle.Render(fmt.Sprintf("Level %d · %s", profile.Level, profile.Title)))
	fmt.Printf("  XP: %s\n", xpStyle.Render(fmt.Sprintf("%d / %d", profile.TotalXP, profile.NextLevelXP)))
	fmt.Printf("  Streak: 🔥 %d (best %d)\n", stats.CurrentStreak, stats.LongestStreak)
	fmt.Printf("  Freezes: %d\n", profile.StreakFreezes)
	fmt.Printf("  Days active: %d · habits completed: %d\n", stats.TotalDaysActive, stats.TotalHabitsCompleted)

	limits := ctx.Engine.Limits()
	fmt.Printf("\nPlan: %s\n", ctx.State.User.Plan)
	fmt.Printf("  Habits: %s\n", limitLine(len(activeHabits(ctx)), limits.MaxHabits))
	fmt.Printf("  Goals: %s\n", limitLine(openGoals(ctx), limits.MaxGoals))
	return nil
}

func limitLine(used, max int) string {
	if max == engine.Unlimited {
		return fmt.Sprintf("%d (unlimited)", used)
	}
	return fmt.Sprintf("%d / %d", used, max)
}

func activeHabits(ctx *Context) []string {
	var ids []string
	for _, h := range ctx.State.Habits {
		if !h.Archived {
			ids = append(ids, h.ID)
		}
	}
	return ids
}

func openGoals(ctx *Context) int {
	n := 0
	for _, g := range ctx.State.Goals {
		if g.Status != constants.GoalCompleted {
			n++
		}
	}
	return n
}
