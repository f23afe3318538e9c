// Package keyring stores the Postgres connection string in the OS keyring so
// it never sits in a config file or shell history.
package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/zalando/go-keyring"
)

// EnvConnectionString overrides the keyring when set, for headless
// environments without a keyring daemon.
const EnvConnectionString = "ASCEND_DATABASE_URL"

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString reads the stored connection string from the OS keyring
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the connection string in the OS keyring
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// ResolveConnectionString returns the connection string to use, preferring
// the environment override over the OS keyring.
func ResolveConnectionString() (string, error) {
	if connStr := os.Getenv(EnvConnectionString); connStr != "" {
		return connStr, nil
	}
	return GetConnectionString()
}

// IsAvailable reports whether the OS keyring responds at all. A not-found
// result still means the keyring itself works.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-check")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
