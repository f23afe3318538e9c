package storage

import (
	"net/url"
	"strings"

	"github.com/julianstephens/ascend/internal/state"
)

// Provider persists the application state tree. Load returns a fully migrated
// and normalized state; Save writes the whole tree back.
type Provider interface {
	Init() error
	Load() (*state.State, error)
	Save(*state.State) error
	// Migrate applies any pending schema or snapshot migrations in place
	Migrate(logFn func(string)) error
	Close() error
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a postgres connection string carries
// a password inline. Such strings should go to the keyring, not config files.
func HasEmbeddedCredentials(connStr string) bool {
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, has := u.User.Password()
	return has
}
