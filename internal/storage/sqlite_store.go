package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/logger"
	"github.com/julianstephens/ascend/internal/migration"
	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/state"
	"github.com/julianstephens/ascend/migrations"
)

// SQLiteStore persists the state tree in a local sqlite database. High-volume
// collections get their own tables; low-volume ones share a documents table
// keyed by kind.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations.SQLite())
	if _, err := runner.Apply(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if count == 0 {
		return s.Save(state.New())
	}
	return nil
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

// Migrate applies pending schema migrations to an existing database
func (s *SQLiteStore) Migrate(logFn func(string)) error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'ascend init' first")
	}
	if err := s.open(); err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, migrations.SQLite())
	_, err := runner.Apply(logFn)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) Load() (*state.State, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("storage not initialized, run 'ascend init' first")
	}
	if err := s.open(); err != nil {
		return nil, err
	}

	runner := migration.NewRunner(s.db, migrations.SQLite())
	if err := runner.Validate(); err != nil {
		return nil, err
	}

	st := &state.State{}
	if err := s.loadUser(st); err != nil {
		return nil, err
	}
	if err := s.loadHabits(st); err != nil {
		return nil, err
	}
	if err := s.loadEntries(st); err != nil {
		return nil, err
	}
	if err := s.loadTasks(st); err != nil {
		return nil, err
	}
	if err := s.loadLists(st); err != nil {
		return nil, err
	}
	if err := s.loadGoals(st); err != nil {
		return nil, err
	}
	if err := s.loadDocuments(st); err != nil {
		return nil, err
	}

	// Data-level upgrades are handled by the SQL migration chain here, so the
	// assembled tree is already current.
	st.Version = state.CurrentVersion
	st.Normalize()
	return st, nil
}

func (s *SQLiteStore) loadUser(st *state.State) error {
	var profileJSON, statsJSON string
	err := s.db.QueryRow("SELECT id, name, plan, profile, stats FROM users LIMIT 1").
		Scan(&st.User.ID, &st.User.Name, &st.User.Plan, &profileJSON, &statsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := json.Unmarshal([]byte(profileJSON), &st.User.Profile); err != nil {
		return fmt.Errorf("failed to parse user profile: %w", err)
	}
	if err := json.Unmarshal([]byte(statsJSON), &st.User.Stats); err != nil {
		return fmt.Errorf("failed to parse user stats: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadHabits(st *state.State) error {
	rows, err := s.db.Query(`SELECT id, user_id, name, category, frequency, weekdays,
		monthly_goal, streak, best_streak, is_active, archived, sort_order, created_at
		FROM habits ORDER BY sort_order, created_at`)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.Habit
		var weekdaysJSON, createdAt string
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Category, &h.Frequency, &weekdaysJSON,
			&h.MonthlyGoal, &h.Streak, &h.BestStreak, &h.IsActive, &h.Archived, &h.Order, &createdAt); err != nil {
			return fmt.Errorf("failed to scan habit: %w", err)
		}
		if err := json.Unmarshal([]byte(weekdaysJSON), &h.Weekdays); err != nil {
			return fmt.Errorf("failed to parse habit weekdays: %w", err)
		}
		h.CreatedAt = parseTimestamp(createdAt)
		st.Habits = append(st.Habits, h)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadEntries(st *state.State) error {
	rows, err := s.db.Query("SELECT id, habit_id, day, completed, completed_at FROM habit_entries")
	if err != nil {
		return fmt.Errorf("failed to load habit entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.HabitEntry
		var completedAt sql.NullString
		if err := rows.Scan(&e.ID, &e.HabitID, &e.Day, &e.Completed, &completedAt); err != nil {
			return fmt.Errorf("failed to scan habit entry: %w", err)
		}
		if completedAt.Valid {
			t := parseTimestamp(completedAt.String)
			e.CompletedAt = &t
		}
		st.HabitEntries = append(st.HabitEntries, e)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadTasks(st *state.State) error {
	rows, err := s.db.Query(`SELECT id, list_id, title, due_date, due_time, status, priority,
		repeat_rule, subtasks, xp, created_at, completed_at FROM tasks ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Task
		var repeatJSON, subtasksJSON, createdAt string
		var completedAt sql.NullString
		if err := rows.Scan(&t.ID, &t.ListID, &t.Title, &t.DueDate, &t.DueTime, &t.Status,
			&t.Priority, &repeatJSON, &subtasksJSON, &t.XP, &createdAt, &completedAt); err != nil {
			return fmt.Errorf("failed to scan task: %w", err)
		}
		if err := json.Unmarshal([]byte(repeatJSON), &t.Repeat); err != nil {
			return fmt.Errorf("failed to parse task repeat rule: %w", err)
		}
		if err := json.Unmarshal([]byte(subtasksJSON), &t.Subtasks); err != nil {
			return fmt.Errorf("failed to parse task subtasks: %w", err)
		}
		t.CreatedAt = parseTimestamp(createdAt)
		if completedAt.Valid {
			ct := parseTimestamp(completedAt.String)
			t.CompletedAt = &ct
		}
		st.Tasks = append(st.Tasks, t)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadLists(st *state.State) error {
	rows, err := s.db.Query("SELECT id, name FROM task_lists")
	if err != nil {
		return fmt.Errorf("failed to load task lists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.TaskList
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return fmt.Errorf("failed to scan task list: %w", err)
		}
		st.TaskLists = append(st.TaskLists, l)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadGoals(st *state.State) error {
	rows, err := s.db.Query("SELECT payload FROM goals")
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("failed to scan goal: %w", err)
		}
		var g models.UltimateGoal
		if err := json.Unmarshal([]byte(payload), &g); err != nil {
			return fmt.Errorf("failed to parse goal: %w", err)
		}
		st.Goals = append(st.Goals, g)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadDocuments(st *state.State) error {
	rows, err := s.db.Query("SELECT kind, payload FROM documents")
	if err != nil {
		return fmt.Errorf("failed to load documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}

		var target any
		switch kind {
		case "habit_stacks":
			target = &st.HabitStacks
		case "identities":
			target = &st.Identities
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
		if err := json.Unmarshal([]byte(payload), target); err != nil {
			return fmt.Errorf("failed to parse document %s: %w", kind, err)
		}
	}
	return rows.Err()
}

// Save rewrites every table inside one transaction so the stored tree always
// matches a single in-memory snapshot.
func (s *SQLiteStore) Save(st *state.State) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"users", "habits", "habit_entries", "tasks", "task_lists", "goals", "documents"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	profileJSON, err := json.Marshal(st.User.Profile)
	if err != nil {
		return fmt.Errorf("failed to serialize user profile: %w", err)
	}
	statsJSON, err := json.Marshal(st.User.Stats)
	if err != nil {
		return fmt.Errorf("failed to serialize user stats: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO users (id, name, plan, profile, stats) VALUES (?, ?, ?, ?, ?)",
		st.User.ID, st.User.Name, string(st.User.Plan), string(profileJSON), string(statsJSON)); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	for _, h := range st.Habits {
		weekdaysJSON, err := json.Marshal(h.Weekdays)
		if err != nil {
			return fmt.Errorf("failed to serialize habit weekdays: %w", err)
		}
		if _, err := tx.Exec(`INSERT INTO habits (id, user_id, name, category, frequency, weekdays,
			monthly_goal, streak, best_streak, is_active, archived, sort_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.UserID, h.Name, h.Category, string(h.Frequency), string(weekdaysJSON),
			h.MonthlyGoal, h.Streak, h.BestStreak, h.IsActive, h.Archived, h.Order,
			h.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to save habit %s: %w", h.ID, err)
		}
	}

	for _, e := range st.HabitEntries {
		var completedAt any
		if e.CompletedAt != nil {
			completedAt = e.CompletedAt.UTC().Format(time.RFC3339)
		}
		if _, err := tx.Exec("INSERT INTO habit_entries (id, habit_id, day, completed, completed_at) VALUES (?, ?, ?, ?, ?)",
			e.ID, e.HabitID, e.Day, e.Completed, completedAt); err != nil {
			return fmt.Errorf("failed to save habit entry %s: %w", e.ID, err)
		}
	}

	for _, t := range st.Tasks {
		repeatJSON, err := json.Marshal(t.Repeat)
		if err != nil {
			return fmt.Errorf("failed to serialize task repeat rule: %w", err)
		}
		subtasksJSON, err := json.Marshal(t.Subtasks)
		if err != nil {
			return fmt.Errorf("failed to serialize task subtasks: %w", err)
		}
		var completedAt any
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.UTC().Format(time.RFC3339)
		}
		if _, err := tx.Exec(`INSERT INTO tasks (id, list_id, title, due_date, due_time, status,
			priority, repeat_rule, subtasks, xp, created_at, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.ListID, t.Title, t.DueDate, t.DueTime, string(t.Status), string(t.Priority),
			string(repeatJSON), string(subtasksJSON), t.XP,
			t.CreatedAt.UTC().Format(time.RFC3339), completedAt); err != nil {
			return fmt.Errorf("failed to save task %s: %w", t.ID, err)
		}
	}

	for _, l := range st.TaskLists {
		if _, err := tx.Exec("INSERT INTO task_lists (id, name) VALUES (?, ?)", l.ID, l.Name); err != nil {
			return fmt.Errorf("failed to save task list %s: %w", l.ID, err)
		}
	}

	for _, g := range st.Goals {
		payload, err := json.Marshal(g)
		if err != nil {
			return fmt.Errorf("failed to serialize goal %s: %w", g.ID, err)
		}
		if _, err := tx.Exec("INSERT INTO goals (id, payload) VALUES (?, ?)", g.ID, string(payload)); err != nil {
			return fmt.Errorf("failed to save goal %s: %w", g.ID, err)
		}
	}

	docs := map[string]any{
		"habit_stacks":      st.HabitStacks,
		"identities":        st.Identities,
		"mood_entries":      st.MoodEntries,
		"gratitude_entries": st.GratitudeEntries,
		"reward_tokens":     st.RewardTokens,
		"pomodoro_sessions": st.Pomodoros,
		"focus_stats":       st.FocusStats,
		"wellness_settings": st.Wellness,
	}
	for kind, v := range docs {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize document %s: %w", kind, err)
		}
		if _, err := tx.Exec("INSERT INTO documents (kind, payload) VALUES (?, ?)", kind, string(payload)); err != nil {
			return fmt.Errorf("failed to save document %s: %w", kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Older rows stored bare dates
		t, err = time.Parse(constants.DateFormat, s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}
