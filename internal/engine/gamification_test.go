package engine

import (
	"testing"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/notifier"
)

func TestLevelForXP_TableBoundaries(t *testing.T) {
	cases := []struct {
		xp        int
		wantLevel int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{4499, 9},
		{4500, 10},
	}

	for _, c := range cases {
		level, _, _ := LevelForXP(c.xp)
		if level != c.wantLevel {
			t.Errorf("LevelForXP(%d) level = %d, want %d", c.xp, level, c.wantLevel)
		}
	}
}

func TestLevelForXP_BeyondTable(t *testing.T) {
	last := constants.LevelThresholds[len(constants.LevelThresholds)-1]

	level, title, next := LevelForXP(last.XP + constants.XPPerLevelBeyondTable)
	if level != last.Level+1 {
		t.Errorf("level = %d, want %d", level, last.Level+1)
	}
	if title != last.Title {
		t.Errorf("title = %q, want the final table title %q", title, last.Title)
	}
	if next != last.XP+2*constants.XPPerLevelBeyondTable {
		t.Errorf("next = %d, want %d", next, last.XP+2*constants.XPPerLevelBeyondTable)
	}
}

func TestLevelForXP_NextLevelWithinTable(t *testing.T) {
	_, _, next := LevelForXP(0)
	if next != constants.LevelThresholds[1].XP {
		t.Errorf("next = %d, want %d", next, constants.LevelThresholds[1].XP)
	}
}

func TestAddXP_LevelUpNotifies(t *testing.T) {
	e, rec := newTestEngine("2024-03-01")

	e.AddXP(100, "test")

	p := e.State().User.Profile
	if p.Level != 2 {
		t.Errorf("level = %d, want 2", p.Level)
	}
	if p.TotalXP != 100 || p.XP != 100 {
		t.Errorf("xp counters = (%d, %d), want (100, 100)", p.XP, p.TotalXP)
	}
	if !rec.Has(notifier.SeverityCelebration) {
		t.Error("expected a level-up celebration notification")
	}
}

func TestAddXP_NoLevelNoNotification(t *testing.T) {
	e, rec := newTestEngine("2024-03-01")

	e.AddXP(50, "test")

	if len(rec.Sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(rec.Sent))
	}
}

func TestRemoveXP_FloorsAtZero(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")

	e.AddXP(10, "test")
	e.mu.Lock()
	e.removeXP(50, "test")
	e.mu.Unlock()

	p := e.State().User.Profile
	if p.TotalXP != 0 || p.XP != 0 {
		t.Errorf("xp counters = (%d, %d), want (0, 0)", p.XP, p.TotalXP)
	}
	if p.Level != 1 {
		t.Errorf("level = %d, want 1", p.Level)
	}
}

func TestRemoveXP_LevelRegressesSilently(t *testing.T) {
	e, rec := newTestEngine("2024-03-01")

	e.AddXP(100, "test")
	rec.Sent = nil

	e.mu.Lock()
	e.removeXP(10, "test")
	e.mu.Unlock()

	p := e.State().User.Profile
	if p.Level != 1 {
		t.Errorf("level = %d, want 1 after regression", p.Level)
	}
	if len(rec.Sent) != 0 {
		t.Errorf("expected no level-down notification, got %d", len(rec.Sent))
	}
}

func TestUseStreakFreeze_EmptyCounter(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")

	if e.UseStreakFreeze() {
		t.Error("UseStreakFreeze() should fail with zero freezes")
	}
	if e.State().User.Profile.StreakFreezes != 0 {
		t.Error("freeze counter should remain zero")
	}
}

func TestAwardStreakFreeze_Cap(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")

	for i := 0; i < constants.MaxStreakFreezes+3; i++ {
		e.AwardStreakFreeze()
	}
	if got := e.State().User.Profile.StreakFreezes; got != constants.MaxStreakFreezes {
		t.Errorf("freezes = %d, want cap %d", got, constants.MaxStreakFreezes)
	}
}

func TestConsumeCelebration_OneShot(t *testing.T) {
	e, _ := newTestEngine("2024-03-01")
	e.State().User.Stats.PendingCelebration = 7

	if got := e.ConsumeCelebration(); got != 7 {
		t.Errorf("first consume = %d, want 7", got)
	}
	if got := e.ConsumeCelebration(); got != 0 {
		t.Errorf("second consume = %d, want 0", got)
	}
}
