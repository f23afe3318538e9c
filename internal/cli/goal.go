package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/ascend/internal/aiplan"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/engine"
	"github.com/julianstephens/ascend/internal/models"
)

type GoalCmd struct {
	Import   GoalImportCmd   `cmd:"" help:"Import a goal from a decomposition plan file."`
	List     GoalListCmd     `cmd:"" help:"List goals with progress."`
	Show     GoalShowCmd     `cmd:"" help:"Show a goal's full milestone tree."`
	Tasks    GoalTasksCmd    `cmd:"" help:"Show today's goal tasks (including recently overdue)."`
	Complete GoalCompleteCmd `cmd:"" help:"Complete a goal task."`
	Skip     GoalSkipCmd     `cmd:"" help:"Skip a goal task."`
}

type GoalImportCmd struct {
	Title    string `arg:"" help:"Goal title."`
	Plan     string `arg:"" help:"Path to a decomposition JSON file." type:"existingfile"`
	Category string `help:"Goal category." default:""`
	Start    string `help:"Start date for week one (default: today)." default:""`
	Habits   bool   `help:"Also create the plan's suggested habits."`
}

func (c *GoalImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.Plan)
	if err != nil {
		return fmt.Errorf("failed to read plan file: %w", err)
	}
	decomp, err := aiplan.Parse(data)
	if err != nil {
		return err
	}

	day, err := ResolveDay(c.Start)
	if err != nil {
		return err
	}
	start, _ := time.Parse(constants.DateFormat, day)

	goal := aiplan.BuildGoal(c.Title, c.Category, decomp, start)
	if !ctx.Engine.AddGoal(goal) {
		return nil
	}

	if c.Habits {
		for _, seed := range aiplan.Habits(decomp) {
			ctx.Engine.AddHabit(seed.Name, seed.Category, seed.Frequency, seed.Weekdays)
		}
	}

	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Printf("Imported goal %q: %d milestones, %d weeks\n",
		goal.Title, len(goal.Milestones), countWeeks(goal))
	return nil
}

func countWeeks(goal models.UltimateGoal) int {
	weeks := 0
	for _, m := range goal.Milestones {
		weeks += len(m.Objectives)
	}
	return weeks
}

type GoalListCmd struct {
	All bool `help:"Include completed goals."`
}

func (c *GoalListCmd) Run(ctx *Context) error {
	shown := 0
	for _, g := range ctx.State.Goals {
		if g.Status == constants.GoalCompleted && !c.All {
			continue
		}
		shown++
		fmt.Printf("%s %s %s\n", titleStyle.Render(g.Title), progressBar(g.Progress), dimStyle.Render(string(g.Status)))
		fmt.Printf("  %s\n", dimStyle.Render("id: "+g.ID))
	}
	if shown == 0 {
		fmt.Println("No goals. Import one with 'ascend goal import'.")
	}
	return nil
}

type GoalShowCmd struct {
	Goal string `arg:"" help:"Goal title or id."`
}

func (c *GoalShowCmd) Run(ctx *Context) error {
	goal, err := findGoal(ctx, c.Goal)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", titleStyle.Render(goal.Title), progressBar(goal.Progress))
	for _, m := range goal.Milestones {
		fmt.Printf("  %s %s\n", m.Title, progressBar(m.Progress))
		for _, o := range m.Objectives {
			fmt.Printf("    week %d: %s %s\n", o.Week, o.Title, progressBar(o.Progress))
			for _, t := range o.DailyTasks {
				mark := checkbox(t.Status == constants.DailyTaskCompleted)
				if t.Status == constants.DailyTaskSkipped {
					mark = dimStyle.Render("[s]")
				}
				fmt.Printf("      %s %s %s\n", mark, t.Title, dimStyle.Render(t.Date))
			}
		}
	}
	return nil
}

type GoalTasksCmd struct{}

func (c *GoalTasksCmd) Run(ctx *Context) error {
	views := ctx.Engine.TodaysGoalTasks()
	if len(views) == 0 {
		fmt.Println("No goal tasks due.")
		return nil
	}

	today := ctx.Engine.Today()
	for _, v := range views {
		overdue := ""
		if v.Task.Date < today {
			overdue = warningStyle.Render(" (overdue " + v.Task.Date + ")")
		}
		fmt.Printf("%s %s%s\n", checkbox(false), v.Task.Title, overdue)
		fmt.Printf("    %s\n", dimStyle.Render("id: "+v.Task.ID))
	}
	return nil
}

type GoalCompleteCmd struct {
	Task string `arg:"" help:"Goal task id."`
}

func (c *GoalCompleteCmd) Run(ctx *Context) error {
	v, err := findGoalTask(ctx, c.Task)
	if err != nil {
		return err
	}
	if ctx.Engine.CompleteGoalTask(v.GoalID, v.MilestoneID, v.ObjectiveID, v.Task.ID) {
		return ctx.SaveState()
	}
	return nil
}

type GoalSkipCmd struct {
	Task string `arg:"" help:"Goal task id."`
}

func (c *GoalSkipCmd) Run(ctx *Context) error {
	v, err := findGoalTask(ctx, c.Task)
	if err != nil {
		return err
	}
	if ctx.Engine.SkipGoalTask(v.GoalID, v.MilestoneID, v.ObjectiveID, v.Task.ID) {
		if err := ctx.SaveState(); err != nil {
			return err
		}
		fmt.Printf("Skipped: %s\n", v.Task.Title)
	}
	return nil
}

func findGoal(ctx *Context, ref string) (models.UltimateGoal, error) {
	for _, g := range ctx.State.Goals {
		if g.ID == ref {
			return g, nil
		}
	}
	for _, g := range ctx.State.Goals {
		if strings.EqualFold(g.Title, ref) {
			return g, nil
		}
	}
	return models.UltimateGoal{}, fmt.Errorf("goal %q not found", ref)
}

// findGoalTask locates a daily task anywhere in the goal trees by id
func findGoalTask(ctx *Context, taskID string) (engine.GoalTaskView, error) {
	for _, g := range ctx.State.Goals {
		for _, m := range g.Milestones {
			for _, o := range m.Objectives {
				for _, t := range o.DailyTasks {
					if t.ID == taskID {
						return engine.GoalTaskView{GoalID: g.ID, MilestoneID: m.ID, ObjectiveID: o.ID, Task: t}, nil
					}
				}
			}
		}
	}
	return engine.GoalTaskView{}, fmt.Errorf("goal task %q not found", taskID)
}

func progressBar(pct int) string {
	const width = 10
	filled := pct * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d%%", successStyle.Render(bar), pct)
}
