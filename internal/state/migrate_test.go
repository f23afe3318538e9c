package state

import (
	"strings"
	"testing"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

func TestMigrate_VersionZeroTreatedAsOldest(t *testing.T) {
	s := &State{}
	if err := Migrate(s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.Version != CurrentVersion {
		t.Errorf("version = %d, want %d", s.Version, CurrentVersion)
	}
}

func TestMigrate_NewerSnapshotRejected(t *testing.T) {
	s := &State{Version: CurrentVersion + 1}
	err := Migrate(s)
	if err == nil {
		t.Fatal("newer snapshot should be rejected")
	}
	if !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("error = %v", err)
	}
}

func TestMigrate_CurrentVersionNoOp(t *testing.T) {
	s := New()
	s.User.Profile.StreakFreezes = 3
	if err := Migrate(s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.User.Profile.StreakFreezes != 3 {
		t.Error("up-to-date snapshot should not be rewritten")
	}
}

func TestMigrate_MoodRatingsRescaled(t *testing.T) {
	s := &State{
		Version: 1,
		MoodEntries: []models.MoodEntry{
			{ID: "a", Day: "2024-01-01", Rating: 10},
			{ID: "b", Day: "2024-01-02", Rating: 7},
			{ID: "c", Day: "2024-01-03", Rating: 0},
			{ID: "d", Day: "2024-01-04", Rating: 3},
		},
	}
	if err := Migrate(s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	want := []int{5, 4, 1, 3}
	for i, w := range want {
		if s.MoodEntries[i].Rating != w {
			t.Errorf("entry %d rating = %d, want %d", i, s.MoodEntries[i].Rating, w)
		}
	}
}

func TestMigrate_FreezeGrantFromLongestStreak(t *testing.T) {
	s := &State{Version: 2}
	s.User.Stats.LongestStreak = 75
	if err := Migrate(s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.User.Profile.StreakFreezes != 2 {
		t.Errorf("freezes = %d, want 2 for a 75-day streak", s.User.Profile.StreakFreezes)
	}
}

func TestMigrate_FreezeGrantCapped(t *testing.T) {
	s := &State{Version: 2}
	s.User.Stats.LongestStreak = 400
	if err := Migrate(s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.User.Profile.StreakFreezes != constants.MaxStreakFreezes {
		t.Errorf("freezes = %d, want cap %d", s.User.Profile.StreakFreezes, constants.MaxStreakFreezes)
	}
}

func TestMigrate_ExistingFreezesUntouched(t *testing.T) {
	s := &State{Version: 2}
	s.User.Stats.LongestStreak = 400
	s.User.Profile.StreakFreezes = 1
	if err := Migrate(s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.User.Profile.StreakFreezes != 1 {
		t.Errorf("freezes = %d, grant should not overwrite an existing balance", s.User.Profile.StreakFreezes)
	}
}

func TestNormalize_BackfillsCollectionsAndInbox(t *testing.T) {
	s := &State{Version: CurrentVersion}
	if err := Migrate(s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if s.Habits == nil || s.Tasks == nil || s.RewardTokens == nil {
		t.Error("collections should never be nil after load")
	}
	if s.User.ID == "" || s.User.Plan != constants.PlanFree {
		t.Errorf("user defaults not applied: %+v", s.User)
	}
	if s.User.Profile.Level != 1 {
		t.Errorf("profile level = %d, want 1", s.User.Profile.Level)
	}

	found := false
	for _, l := range s.TaskLists {
		if l.ID == constants.InboxListID && l.Name == "Inbox" {
			found = true
		}
	}
	if !found {
		t.Error("inbox task list should be back-filled")
	}
}
