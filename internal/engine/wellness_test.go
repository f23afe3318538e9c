package engine

import (
	"testing"

	"github.com/julianstephens/ascend/internal/models"
)

func TestLogMood_ClampsRating(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")

	low := e.LogMood(0, nil, "")
	if low.Rating != 1 {
		t.Errorf("rating 0 clamped to %d, want 1", low.Rating)
	}
	e.State().MoodEntries = nil

	high := e.LogMood(9, nil, "")
	if high.Rating != 5 {
		t.Errorf("rating 9 clamped to %d, want 5", high.Rating)
	}
}

func TestLogMood_SameDayPatches(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")

	first := e.LogMood(2, []string{"tired"}, "rough start")
	second := e.LogMood(4, []string{"rested"}, "better after lunch")

	if len(e.State().MoodEntries) != 1 {
		t.Fatalf("mood entries = %d, want 1 for the same day", len(e.State().MoodEntries))
	}
	got := e.State().MoodEntries[0]
	if got.ID != first.ID {
		t.Error("patch should keep the original entry id")
	}
	if got.Rating != 4 || got.Note != second.Note {
		t.Errorf("entry not patched: rating %d note %q", got.Rating, got.Note)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "rested" {
		t.Errorf("tags = %v, want replaced", got.Tags)
	}
}

func TestAddGratitude_Appends(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")

	e.AddGratitude("good coffee")
	entry := e.AddGratitude("quiet morning")

	if len(e.State().GratitudeEntries) != 2 {
		t.Fatalf("gratitude entries = %d, want 2", len(e.State().GratitudeEntries))
	}
	if entry.Day != "2024-03-01" {
		t.Errorf("entry day = %q", entry.Day)
	}
}

func TestRedeemReward_MarksOnce(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")
	e.State().RewardTokens = append(e.State().RewardTokens, models.RewardToken{
		ID: "tok1", Reason: "7-day streak",
	})

	if !e.RedeemReward("tok1") {
		t.Fatal("first redeem should succeed")
	}
	if e.State().RewardTokens[0].RedeemedAt == nil {
		t.Error("token should record redemption time")
	}
	if e.RedeemReward("tok1") {
		t.Error("second redeem should fail")
	}
	if e.RedeemReward("missing") {
		t.Error("unknown token should fail")
	}
}

func TestLogPomodoro_AggregatesFocusStats(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")

	e.LogPomodoro(25, "")
	sess := e.LogPomodoro(50, "task1")

	if sess.TaskID != "task1" || sess.DurationMin != 50 {
		t.Errorf("session = %+v", sess)
	}
	stats := e.State().FocusStats
	if stats.TotalSessions != 2 || stats.TotalMinutes != 75 {
		t.Errorf("focus stats = %+v, want 2 sessions / 75 minutes", stats)
	}
}
