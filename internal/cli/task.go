package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a manual task."`
	List   TaskListCmd   `cmd:"" help:"List manual tasks."`
	Toggle TaskToggleCmd `cmd:"" help:"Toggle a task's completion."`
	Cancel TaskCancelCmd `cmd:"" help:"Cancel a task."`
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Due      string `help:"Due date in YYYY-MM-DD format." default:""`
	Time     string `help:"Due time in HH:MM format." default:""`
	Priority string `help:"Priority (urgent, critical, high, medium, low)." default:""`
	List     string `help:"Task list id." default:""`
	Repeat   string `help:"Repeat rule (daily, weekly, monthly, yearly, or a day count)." default:""`
	Weekdays string `help:"Weekdays for a weekly repeat (e.g. mon,thu)." default:""`
	Until    string `help:"Last date the repeat applies, YYYY-MM-DD format." default:""`
	XP       int    `help:"XP awarded on completion." default:"0"`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	task := models.Task{
		Title:    c.Title,
		ListID:   c.List,
		DueTime:  c.Time,
		Priority: constants.Priority(c.Priority),
		XP:       c.XP,
	}

	if c.Due != "" {
		day, err := ResolveDay(c.Due)
		if err != nil {
			return err
		}
		task.DueDate = day
	}

	rule, err := parseRepeat(c.Repeat, c.Weekdays, c.Until)
	if err != nil {
		return err
	}
	task.Repeat = rule

	added := ctx.Engine.AddTask(task)
	if err := ctx.SaveState(); err != nil {
		return err
	}

	repeat := ""
	if r := FormatRepeat(added.Repeat); r != "" {
		repeat = dimStyle.Render(" (" + r + ")")
	}
	fmt.Printf("Added task: %s%s\n", added.Title, repeat)
	fmt.Printf("  %s\n", dimStyle.Render("id: "+added.ID))
	return nil
}

func parseRepeat(repeat, weekdays, until string) (models.RepeatRule, error) {
	rule := models.RepeatRule{Type: constants.RepeatNone}
	if repeat == "" {
		return rule, nil
	}

	switch repeat {
	case "daily":
		rule.Type = constants.RepeatDaily
	case "weekly":
		rule.Type = constants.RepeatWeekly
	case "monthly":
		rule.Type = constants.RepeatMonthly
	case "yearly":
		rule.Type = constants.RepeatYearly
	default:
		var days int
		if _, err := fmt.Sscanf(repeat, "%d", &days); err != nil || days < 1 {
			return rule, fmt.Errorf("invalid repeat rule: %s", repeat)
		}
		rule.Type = constants.RepeatCustom
		rule.Interval = days
	}

	if weekdays != "" {
		if rule.Type != constants.RepeatWeekly {
			return rule, fmt.Errorf("weekdays only apply to weekly repeats")
		}
		wds, err := ParseWeekdays(weekdays)
		if err != nil {
			return rule, err
		}
		rule.Weekdays = wds
	}

	if until != "" {
		day, err := ResolveDay(until)
		if err != nil {
			return rule, err
		}
		rule.EndDate = day
	}
	return rule, nil
}

type TaskListCmd struct {
	All  bool   `help:"Include completed and cancelled tasks."`
	List string `help:"Only show tasks from this list." default:""`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	shown := 0
	for _, t := range ctx.State.Tasks {
		if c.List != "" && t.ListID != c.List {
			continue
		}
		if !c.All && t.Status != constants.TaskPending {
			continue
		}
		shown++

		title := t.Title
		if t.Status == constants.TaskCompleted {
			title = doneStyle.Render(title)
		} else if t.Status == constants.TaskCancelled {
			title = dimStyle.Render(title + " [cancelled]")
		}

		meta := []string{"id: " + t.ID}
		if t.DueDate != "" {
			meta = append(meta, "due "+t.DueDate)
		}
		if r := FormatRepeat(t.Repeat); r != "" {
			meta = append(meta, r)
		}
		fmt.Printf("%s %s\n", checkbox(t.Status == constants.TaskCompleted), title)
		fmt.Printf("    %s\n", dimStyle.Render(strings.Join(meta, " · ")))
	}

	if shown == 0 {
		fmt.Println("No tasks.")
	}
	return nil
}

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskToggleCmd) Run(ctx *Context) error {
	if ctx.Engine.ToggleTask(c.ID) {
		return ctx.SaveState()
	}
	return nil
}

type TaskCancelCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskCancelCmd) Run(ctx *Context) error {
	if ctx.Engine.CancelTask(c.ID) {
		if err := ctx.SaveState(); err != nil {
			return err
		}
		fmt.Println("Task cancelled.")
	}
	return nil
}
