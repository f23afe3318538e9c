package cli

import (
	"fmt"

	"github.com/julianstephens/ascend/internal/engine"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	tasks := ctx.Engine.TodayTasks()
	if len(tasks) == 0 {
		fmt.Println("Nothing on deck today.")
		return nil
	}

	fmt.Println(titleStyle.Render("Today · " + ctx.Engine.Today()))
	printUnified(tasks)

	if milestone := ctx.Engine.ConsumeCelebration(); milestone > 0 {
		fmt.Println(celebrateStyle.Render(fmt.Sprintf("★ %d-day streak! Keep it rolling.", milestone)))
		return ctx.SaveState()
	}
	return nil
}

type AllCmd struct{}

func (c *AllCmd) Run(ctx *Context) error {
	tasks := ctx.Engine.AllTasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks anywhere. Nice and quiet.")
		return nil
	}
	printUnified(tasks)
	return nil
}

func printUnified(tasks []engine.UnifiedTask) {
	for _, t := range tasks {
		title := t.Title
		if t.Completed {
			title = doneStyle.Render(title)
		}

		tag := dimStyle.Render("[" + string(t.Source) + "]")
		day := ""
		if t.Day != "" {
			day = " " + dimStyle.Render(t.Day)
		}
		fmt.Printf("%s %s %s%s\n", checkbox(t.Completed), title, tag, day)
		fmt.Printf("    %s\n", dimStyle.Render("id: "+t.ID))
	}
}

type DoneCmd struct {
	ID string `arg:"" help:"Unified task id from 'ascend today'."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if !ctx.Engine.CompleteUnifiedByID(c.ID) {
		fmt.Printf("Nothing to do for %s\n", c.ID)
		return nil
	}
	return ctx.SaveState()
}

type SkipCmd struct {
	ID string `arg:"" help:"Unified task id from 'ascend today'."`
}

func (c *SkipCmd) Run(ctx *Context) error {
	if !ctx.Engine.SkipUnifiedByID(c.ID) {
		fmt.Printf("Nothing to skip for %s\n", c.ID)
		return nil
	}
	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Println("Skipped.")
	return nil
}
