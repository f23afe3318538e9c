package cli

import (
	"fmt"

	"github.com/julianstephens/ascend/internal/keyring"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/storage"
	"github.com/julianstephens/ascend/internal/validation"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	return ctx.Store.Migrate(func(msg string) {
		fmt.Println(msg)
	})
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Printf("Storage: %s\n", ctx.Store.GetConfigPath())

	if keyring.IsAvailable() {
		fmt.Println("Keyring: available")
	} else {
		fmt.Println("Keyring: unavailable (connection strings fall back to ASCEND_DATABASE_URL)")
	}

	result := validation.Check(ctx.State)
	fmt.Print(result.FormatReport())
	if result.HasFindings() {
		return fmt.Errorf("%d problem(s) found", len(result.Findings))
	}
	return nil
}

type ConfigCmd struct {
	SetConnection    ConfigSetConnectionCmd    `cmd:"" help:"Store a database connection string in the OS keyring."`
	DeleteConnection ConfigDeleteConnectionCmd `cmd:"" help:"Remove the stored connection string."`
}

type ConfigSetConnectionCmd struct {
	ConnStr string `arg:"" help:"PostgreSQL connection string, credentials included."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !storage.HasEmbeddedCredentials(c.ConnStr) {
		logger.Warn("connection string has no embedded password, storing anyway")
	}
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in keyring.")
	return nil
}

type ConfigDeleteConnectionCmd struct{}

func (c *ConfigDeleteConnectionCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from keyring.")
	return nil
}
