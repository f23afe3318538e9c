package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ascend/internal/cli"
	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/engine"
	"github.com/julianstephens/ascend/internal/errors"
	"github.com/julianstephens/ascend/internal/keyring"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/notifier"
	"github.com/julianstephens/ascend/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"Storage path (.db for sqlite, .json for a plain snapshot) or 'postgres' to use the stored connection string." default:"~/.config/ascend/ascend.db"`

	Init    cli.InitCmd    `cmd:"" help:"Initialize ascend storage."`
	Migrate cli.MigrateCmd `cmd:"" help:"Run storage migrations."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Check the stored data for inconsistencies."`
	Setup   cli.ConfigCmd  `cmd:"" name:"config" help:"Manage stored configuration."`

	Today     cli.TodayCmd     `cmd:"" help:"Show today's unified task list." default:"1"`
	All       cli.AllCmd       `cmd:"" help:"Show every task across all sources."`
	Done      cli.DoneCmd      `cmd:"" help:"Complete a task by unified id."`
	Skip      cli.SkipCmd      `cmd:"" help:"Skip a task by unified id."`
	Stats     cli.StatsCmd     `cmd:"" help:"Show level, XP, streaks, and plan limits."`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits."`
	Goal      cli.GoalCmd      `cmd:"" help:"Manage long-term goals."`
	Task      cli.TaskCmd      `cmd:"" help:"Manage manual tasks."`
	Mood      cli.MoodCmd      `cmd:"" help:"Log today's mood."`
	Gratitude cli.GratitudeCmd `cmd:"" help:"Log a gratitude entry."`
	Reward    cli.RewardCmd    `cmd:"" help:"Manage reward tokens."`
	Focus     cli.PomodoroCmd  `cmd:"" help:"Log a focus session."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker and goal companion with streaks and XP"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandPath(CLI.Config)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		errors.Fatal(err)
	}

	store, err := openStore(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	appCtx := &cli.Context{Store: store}

	if needsState(ctx.Command()) {
		st, err := store.Load()
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.State = st
		appCtx.Engine = engine.New(st, engine.WithSink(notifier.Multi{
			cli.ConsoleSink{},
			notifier.NewTray(),
		}))
	}

	errors.Fatal(ctx.Run(appCtx))
}

// needsState reports whether the selected command operates on loaded state
func needsState(command string) bool {
	switch strings.Fields(command)[0] {
	case "init", "migrate", "config":
		return false
	}
	return true
}

func openStore(configPath string) (storage.Provider, error) {
	if configPath == "postgres" || strings.HasPrefix(configPath, "postgres://") || strings.HasPrefix(configPath, "postgresql://") {
		connStr := configPath
		if configPath == "postgres" {
			resolved, err := keyring.ResolveConnectionString()
			if err != nil {
				return nil, err
			}
			connStr = resolved
		} else if storage.HasEmbeddedCredentials(configPath) {
			// Credentials on the command line leak into shell history
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; store them with 'ascend config set-connection' or set ASCEND_DATABASE_URL")
		}
		return storage.NewPostgresStore(connStr), nil
	}

	if strings.HasSuffix(configPath, ".json") {
		return storage.NewJSONStore(configPath), nil
	}
	return storage.NewSQLiteStore(configPath), nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
