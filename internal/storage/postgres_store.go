package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/migration"
	"github.com/julianstephens/ascend/internal/state"
	"github.com/julianstephens/ascend/migrations"
)

// PostgresStore persists each top-level collection as a JSONB document in a
// single table. The snapshot version travels in a meta document so the same
// migration chain as the JSON backend applies on load.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

type snapshotMeta struct {
	Version int `json:"version"`
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations.Postgres())
	if _, err := runner.Apply(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM documents WHERE kind = 'user'").Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if count == 0 {
		return s.Save(state.New())
	}
	return nil
}

func (s *PostgresStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

// Migrate applies pending schema migrations, then rewrites the documents so
// snapshot-level upgrades land as well.
func (s *PostgresStore) Migrate(logFn func(string)) error {
	if err := s.open(); err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, migrations.Postgres())
	if _, err := runner.Apply(logFn); err != nil {
		return err
	}
	st, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(st)
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

func (s *PostgresStore) Load() (*state.State, error) {
	if err := s.open(); err != nil {
		return nil, err
	}

	runner := migration.NewRunner(s.db, migrations.Postgres())
	if err := runner.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT kind, payload FROM documents")
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	defer rows.Close()

	st := &state.State{}
	seen := 0
	for rows.Next() {
		var kind string
		var payload []byte
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		seen++

		var target any
		switch kind {
		case "meta":
			var meta snapshotMeta
			if err := json.Unmarshal(payload, &meta); err != nil {
				return nil, fmt.Errorf("failed to parse snapshot meta: %w", err)
			}
			st.Version = meta.Version
			continue
		case "user":
			target = &st.User
		case "habits":
			target = &st.Habits
		case "habit_entries":
			target = &st.HabitEntries
		case "habit_stacks":
			target = &st.HabitStacks
		case "identities":
			target = &st.Identities
		case "goals":
			target = &st.Goals
		case "tasks":
			target = &st.Tasks
		case "task_lists":
			target = &st.TaskLists
		case "mood_entries":
			target = &st.MoodEntries
		case "gratitude_entries":
			target = &st.GratitudeEntries
		case "reward_tokens":
			target = &st.RewardTokens
		case "pomodoro_sessions":
			target = &st.Pomodoros
		case "focus_stats":
			target = &st.FocusStats
		case "wellness_settings":
			target = &st.Wellness
		default:
			logger.Debug("skipping unknown document kind", "kind", kind)
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return nil, fmt.Errorf("failed to parse document %s: %w", kind, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	if seen == 0 {
		return nil, fmt.Errorf("storage not initialized, run 'ascend init' first")
	}

	if err := state.Migrate(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *PostgresStore) Save(st *state.State) error {
	if err := s.open(); err != nil {
		return err
	}

	st.Version = state.CurrentVersion
	docs := map[string]any{
		"meta":              snapshotMeta{Version: st.Version},
		"user":              st.User,
		"habits":            st.Habits,
		"habit_entries":     st.HabitEntries,
		"habit_stacks":      st.HabitStacks,
		"identities":        st.Identities,
		"goals":             st.Goals,
		"tasks":             st.Tasks,
		"task_lists":        st.TaskLists,
		"mood_entries":      st.MoodEntries,
		"gratitude_entries": st.GratitudeEntries,
		"reward_tokens":     st.RewardTokens,
		"pomodoro_sessions": st.Pomodoros,
		"focus_stats":       st.FocusStats,
		"wellness_settings": st.Wellness,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for kind, v := range docs {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize document %s: %w", kind, err)
		}
		if _, err := tx.Exec(`INSERT INTO documents (kind, payload, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (kind) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
			kind, payload); err != nil {
			return fmt.Errorf("failed to save document %s: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}
