package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/ascend/internal/state"
)

// JSONStore persists the state tree as a single indented JSON snapshot.
// It is the default backend and the only one usable without a database.
type JSONStore struct {
	path string
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.write(state.New())
}

func (s *JSONStore) Load() (*state.State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage not initialized, run 'ascend init' first")
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	st := &state.State{}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}

	if err := state.Migrate(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *JSONStore) Save(st *state.State) error {
	st.Version = state.CurrentVersion
	return s.write(st)
}

// Migrate upgrades the snapshot by loading it through the migration chain and
// writing it back at the current version.
func (s *JSONStore) Migrate(logFn func(string)) error {
	if logFn == nil {
		logFn = func(string) {}
	}
	st, err := s.Load()
	if err != nil {
		return err
	}
	if err := s.Save(st); err != nil {
		return err
	}
	logFn(fmt.Sprintf("snapshot is at version %d", st.Version))
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) write(st *state.State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
