package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/ascend/internal/models"
	"github.com/julianstephens/ascend/internal/state"
)

func TestJSONStore_InitCreatesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascend.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Version != state.CurrentVersion {
		t.Errorf("version = %d, want %d", st.Version, state.CurrentVersion)
	}
	if st.User.ID == "" {
		t.Error("fresh snapshot should have a user")
	}
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascend.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	err := store.Init()
	if err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("second Init = %v, want already-initialized error", err)
	}
}

func TestJSONStore_LoadBeforeInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	_, err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Load = %v, want not-initialized error", err)
	}
}

func TestJSONStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascend.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	st.Habits = append(st.Habits, models.Habit{ID: "h1", Name: "Read"})
	st.User.Profile.TotalXP = 120
	if err := store.Save(st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Habits) != 1 || got.Habits[0].Name != "Read" {
		t.Errorf("habits = %+v", got.Habits)
	}
	if got.User.Profile.TotalXP != 120 {
		t.Errorf("total xp = %d, want 120", got.User.Profile.TotalXP)
	}
}

func TestJSONStore_OldSnapshotMigratedOnLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascend.json")

	old := map[string]any{
		"version": 1,
		"user":    map[string]any{"id": "u1", "plan": "free"},
		"mood_entries": []map[string]any{
			{"id": "m1", "day": "2024-01-01", "rating": 8},
		},
	}
	data, err := json.Marshal(old)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	st, err := NewJSONStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Version != state.CurrentVersion {
		t.Errorf("version = %d, want %d", st.Version, state.CurrentVersion)
	}
	if st.MoodEntries[0].Rating != 4 {
		t.Errorf("rating = %d, want rescaled 4", st.MoodEntries[0].Rating)
	}
}
