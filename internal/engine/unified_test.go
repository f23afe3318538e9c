package engine

import (
	"testing"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/models"
)

func TestDisplayID_Contract(t *testing.T) {
	habit := TaskRef{Source: SourceHabit, SourceID: "h1", Day: "2024-03-01"}
	if habit.DisplayID() != "habit-h1-2024-03-01" {
		t.Errorf("habit id = %q", habit.DisplayID())
	}

	goal := TaskRef{Source: SourceGoal, SourceID: "t1"}
	if goal.DisplayID() != "goal-t1" {
		t.Errorf("goal id = %q", goal.DisplayID())
	}

	manual := TaskRef{Source: SourceManual, SourceID: "m1"}
	if manual.DisplayID() != "manual-m1" {
		t.Errorf("manual id = %q", manual.DisplayID())
	}
}

func TestParseDisplayID_RoundTrip(t *testing.T) {
	refs := []TaskRef{
		{Source: SourceHabit, SourceID: "550e8400-e29b-41d4-a716-446655440000", Day: "2024-03-01"},
		{Source: SourceGoal, SourceID: "task-123"},
		{Source: SourceManual, SourceID: "abc"},
	}

	for _, ref := range refs {
		parsed, err := ParseDisplayID(ref.DisplayID())
		if err != nil {
			t.Fatalf("ParseDisplayID(%q) failed: %v", ref.DisplayID(), err)
		}
		if parsed.Source != ref.Source || parsed.SourceID != ref.SourceID || parsed.Day != ref.Day {
			t.Errorf("round trip of %q gave %+v", ref.DisplayID(), parsed)
		}
	}
}

func TestParseDisplayID_Malformed(t *testing.T) {
	for _, id := range []string{"", "habit", "habit-", "habit-h1", "widget-x"} {
		if _, err := ParseDisplayID(id); err == nil {
			t.Errorf("ParseDisplayID(%q) should fail", id)
		}
	}
}

func TestTodayTasks_MergesAllSources(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	e.AddHabit("Read", "", constants.FrequencyDaily, nil)
	e.AddGoal(buildGoal("g1", []string{"2024-03-10"}, 1))
	e.AddTask(models.Task{Title: "Errand", DueDate: "2024-03-10"})
	e.AddTask(models.Task{Title: "Someday", DueDate: "2024-06-01"})
	e.AddTask(models.Task{Title: "Inbox idea"})

	counts := map[TaskSource]int{}
	for _, u := range e.TodayTasks() {
		counts[u.Source]++
	}

	if counts[SourceHabit] != 1 {
		t.Errorf("habit tasks = %d, want 1", counts[SourceHabit])
	}
	if counts[SourceGoal] != 1 {
		t.Errorf("goal tasks = %d, want 1", counts[SourceGoal])
	}
	// The dated errand and the unscheduled inbox task, not the future one
	if counts[SourceManual] != 2 {
		t.Errorf("manual tasks = %d, want 2", counts[SourceManual])
	}
}

func TestTodayTasks_CompletedSortLast(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	h, _ := e.AddHabit("Read", "", constants.FrequencyDaily, nil)
	e.AddTask(models.Task{Title: "Errand", DueDate: "2024-03-10", Priority: constants.PriorityLow})
	e.ToggleHabitEntry(h.ID, "2024-03-10")

	tasks := e.TodayTasks()
	if len(tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(tasks))
	}
	if tasks[0].Completed || !tasks[1].Completed {
		t.Error("completed tasks should sort after pending ones")
	}
}

func TestAllTasks_NoWindowAndDateOrder(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	e.AddGoal(buildGoal("g1", []string{"2024-02-01"}, 1)) // far outside the today window
	e.AddTask(models.Task{Title: "Dated", DueDate: "2024-03-20"})
	e.AddTask(models.Task{Title: "Undated"})

	tasks := e.AllTasks()
	if len(tasks) != 3 {
		t.Fatalf("tasks = %d, want 3", len(tasks))
	}
	if tasks[0].Day != "2024-02-01" {
		t.Errorf("first task day = %q, want the oldest date", tasks[0].Day)
	}
	if tasks[len(tasks)-1].Day != "" {
		t.Error("undated tasks should sort last")
	}
}

func TestCompleteUnified_HabitToggles(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	h, _ := e.AddHabit("Read", "", constants.FrequencyDaily, nil)

	id := TaskRef{Source: SourceHabit, SourceID: h.ID, Day: "2024-03-10"}.DisplayID()
	if !e.CompleteUnifiedByID(id) {
		t.Fatal("habit completion should succeed")
	}

	entry, ok := e.habitEntryFor(h.ID, "2024-03-10")
	if !ok || !entry.Completed {
		t.Error("habit entry should be completed")
	}
}

func TestCompleteUnified_GoalWithoutPathLocates(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	e.AddGoal(buildGoal("g1", []string{"2024-03-10"}, 1))

	if !e.CompleteUnifiedByID("goal-g1-m0-t0") {
		t.Fatal("goal completion via display id should succeed")
	}
	g := e.State().Goals[0]
	if g.Milestones[0].Objectives[0].DailyTasks[0].Status != constants.DailyTaskCompleted {
		t.Error("goal task should be completed")
	}
}

func TestCompleteUnified_ManualToggles(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	task := e.AddTask(models.Task{Title: "Errand"})

	if !e.CompleteUnifiedByID("manual-" + task.ID) {
		t.Fatal("manual completion should succeed")
	}
	if e.State().Tasks[0].Status != constants.TaskCompleted {
		t.Error("manual task should be completed")
	}
}

func TestSkipUnified_Semantics(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	h, _ := e.AddHabit("Read", "", constants.FrequencyDaily, nil)
	e.AddGoal(buildGoal("g1", []string{"2024-03-10"}, 1))
	task := e.AddTask(models.Task{Title: "Errand"})

	if e.SkipUnified(TaskRef{Source: SourceHabit, SourceID: h.ID, Day: "2024-03-10"}) {
		t.Error("habits have no skip semantics")
	}
	if !e.SkipUnifiedByID("goal-g1-m0-t0") {
		t.Error("goal skip should succeed")
	}
	if e.State().Goals[0].Milestones[0].Objectives[0].DailyTasks[0].Status != constants.DailyTaskSkipped {
		t.Error("goal task should be skipped")
	}
	if !e.SkipUnifiedByID("manual-" + task.ID) {
		t.Error("manual skip should succeed")
	}
	if e.State().Tasks[0].Status != constants.TaskCancelled {
		t.Error("skipped manual task should be cancelled")
	}
}

func TestCompleteUnified_StaleRefNoOp(t *testing.T) {
	e, _ := newTestEngine("2024-03-10")
	if e.CompleteUnifiedByID("manual-missing") {
		t.Error("stale manual ref should no-op")
	}
	if e.CompleteUnifiedByID("goal-missing") {
		t.Error("stale goal ref should no-op")
	}
	if e.CompleteUnifiedByID("not a task id") {
		t.Error("garbage id should no-op")
	}
}
