package cli

import (
	"fmt"
	"strings"
)

type MoodCmd struct {
	Rating int      `arg:"" help:"Mood rating from 1 (rough) to 5 (great)."`
	Tags   []string `help:"Optional mood tags." default:""`
	Note   string   `help:"Optional note." default:""`
}

func (c *MoodCmd) Run(ctx *Context) error {
	entry := ctx.Engine.LogMood(c.Rating, c.Tags, c.Note)
	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Printf("Mood logged for %s: %d/5\n", entry.Day, entry.Rating)
	return nil
}

type GratitudeCmd struct {
	Text string `arg:"" help:"What you're grateful for."`
}

func (c *GratitudeCmd) Run(ctx *Context) error {
	entry := ctx.Engine.AddGratitude(c.Text)
	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Printf("Noted for %s.\n", entry.Day)
	return nil
}

type RewardCmd struct {
	List   RewardListCmd   `cmd:"" help:"List earned reward tokens."`
	Redeem RewardRedeemCmd `cmd:"" help:"Redeem a reward token."`
}

type RewardListCmd struct{}

func (c *RewardListCmd) Run(ctx *Context) error {
	if len(ctx.State.RewardTokens) == 0 {
		fmt.Println("No reward tokens yet. Streak milestones earn them.")
		return nil
	}
	for _, token := range ctx.State.RewardTokens {
		status := celebrateStyle.Render("available")
		if token.RedeemedAt != nil {
			status = dimStyle.Render("redeemed " + token.RedeemedAt.Format("2006-01-02"))
		}
		fmt.Printf("%s · %s\n", token.Reason, status)
		fmt.Printf("  %s\n", dimStyle.Render("id: "+token.ID))
	}
	return nil
}

type RewardRedeemCmd struct {
	ID string `arg:"" help:"Reward token id."`
}

func (c *RewardRedeemCmd) Run(ctx *Context) error {
	if !ctx.Engine.RedeemReward(c.ID) {
		fmt.Println("No such unredeemed token.")
		return nil
	}
	if err := ctx.SaveState(); err != nil {
		return err
	}
	fmt.Println(celebrateStyle.Render("Enjoy your reward!"))
	return nil
}

type PomodoroCmd struct {
	Minutes int    `arg:"" help:"Focus session length in minutes."`
	Task    string `help:"Task id the session was spent on." default:""`
}

func (c *PomodoroCmd) Run(ctx *Context) error {
	session := ctx.Engine.LogPomodoro(c.Minutes, c.Task)
	if err := ctx.SaveState(); err != nil {
		return err
	}

	focus := ctx.State.FocusStats
	fmt.Printf("Logged %d min session (%s total across %d sessions)\n",
		session.DurationMin, formatMinutes(focus.TotalMinutes), focus.TotalSessions)
	return nil
}

func formatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	parts := []string{fmt.Sprintf("%dh", min/60)}
	if rem := min % 60; rem > 0 {
		parts = append(parts, fmt.Sprintf("%dm", rem))
	}
	return strings.Join(parts, "")
}
