package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

type HabitCmd struct {
	Add       HabitAddCmd       `cmd:"" help:"Add a new habit."`
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Toggle    HabitToggleCmd    `cmd:"" help:"Toggle a habit's completion for a day."`
	Archive   HabitArchiveCmd   `cmd:"" help:"Archive a habit."`
	Unarchive HabitUnarchiveCmd `cmd:"" help:"Restore an archived habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit."`
	Stack     HabitStackCmd     `cmd:"" help:"Group habits into an ordered stack."`
	Freeze    HabitFreezeCmd    `cmd:"" help:"Spend a streak freeze to protect the current streak."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Category string `help:"Habit category." default:""`
	Weekdays string `help:"Comma-separated weekdays for a weekday habit (e.g. mon,wed,fri)." default:""`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	freq := constants.FrequencyDaily
	var weekdays []time.Weekday
	if c.Weekdays != "" {
		parsed, err := ParseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		freq = constants.FrequencyWeekdays
		weekdays = parsed
	}

	habit, ok := ctx.Engine.AddHabit(c.Name, c.Category, freq, weekdays)
	if !ok {
		// Plan limit hit, the warning already printed through the sink
		return nil
	}

	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%s)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	shown := 0
	for _, h := range ctx.State.Habits {
		if h.Archived && !c.Archived {
			continue
		}
		shown++

		status := ""
		if h.Archived {
			status = dimStyle.Render(" [archived]")
		}
		streak := ""
		if h.Streak > 0 {
			streak = fmt.Sprintf("  🔥 %d", h.Streak)
		}
		fmt.Printf("%s %s%s%s\n", checkbox(habitDoneToday(ctx, h.ID)), h.Name, streak, status)
		fmt.Printf("    %s\n", dimStyle.Render("id: "+h.ID))
	}

	if shown == 0 {
		fmt.Println("No habits yet. Add one with 'ascend habit add'.")
	}
	return nil
}

func habitDoneToday(ctx *Context, habitID string) bool {
	today := ctx.Engine.Today()
	for _, e := range ctx.State.HabitEntries {
		if e.HabitID == habitID && e.Day == today {
			return e.Completed
		}
	}
	return false
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	day, err := ResolveDay(c.Date)
	if err != nil {
		return err
	}

	ctx.Engine.ToggleHabitEntry(habit.ID, day)
	return ctx.SaveState()
}

type HabitArchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if ctx.Engine.ArchiveHabit(habit.ID) {
		if err := ctx.SaveState(); err != nil {
			return err
		}
		fmt.Printf("Archived habit: %s\n", habit.Name)
	}
	return nil
}

type HabitUnarchiveCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitUnarchiveCmd) Run(ctx *Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if ctx.Engine.UnarchiveHabit(habit.ID) {
		if err := ctx.SaveState(); err != nil {
			return err
		}
		fmt.Printf("Restored habit: %s\n", habit.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Force bool   `help:"Delete even if completion history exists."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := findHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	if ctx.Engine.DeleteHabit(habit.ID, c.Force) {
		if err := ctx.SaveState(); err != nil {
			return err
		}
		fmt.Printf("Deleted habit: %s\n", habit.Name)
	}
	return nil
}

type HabitStackCmd struct {
	Add  HabitStackAddCmd  `cmd:"" help:"Create a habit stack."`
	List HabitStackListCmd `cmd:"" help:"List habit stacks."`
}

type HabitStackAddCmd struct {
	Name   string   `arg:"" help:"Stack name."`
	Habits []string `arg:"" help:"Habit names or ids, in order."`
}

func (c *HabitStackAddCmd) Run(ctx *Context) error {
	var ids []string
	for _, ref := range c.Habits {
		habit, err := findHabit(ctx, ref)
		if err != nil {
			return err
		}
		ids = append(ids, habit.ID)
	}

	stack, ok := ctx.Engine.AddHabitStack(c.Name, ids)
	if !ok {
		return nil
	}
	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Printf("Created stack %q with %d habits\n", stack.Name, len(stack.HabitIDs))
	return nil
}

type HabitStackListCmd struct{}

func (c *HabitStackListCmd) Run(ctx *Context) error {
	if len(ctx.State.HabitStacks) == 0 {
		fmt.Println("No habit stacks.")
		return nil
	}
	for _, stack := range ctx.State.HabitStacks {
		fmt.Println(titleStyle.Render(stack.Name))
		for i, id := range stack.HabitIDs {
			name := id
			if h, err := findHabit(ctx, id); err == nil {
				name = h.Name
			}
			fmt.Printf("  %d. %s\n", i+1, name)
		}
	}
	return nil
}

type HabitFreezeCmd struct{}

func (c *HabitFreezeCmd) Run(ctx *Context) error {
	if !ctx.Engine.UseStreakFreeze() {
		fmt.Println("No streak freezes available.")
		return nil
	}
	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Printf("Streak freeze used. %d remaining.\n", ctx.State.User.Profile.StreakFreezes)
	return nil
}

// findHabit resolves a habit by exact id, then by case-insensitive name
func findHabit(ctx *Context, ref string) (models.Habit, error) {
	for _, h := range ctx.State.Habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range ctx.State.Habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}
