package views

import (
	"testing"
	"time"

	"github.com/sunlighthq/tasks-service/internal/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func strPtr(s string) *string {
	return &s
}

func TestDaysUntilDue(t *testing.T) {
	now := date(2024, time.January, 10)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due today", date(2024, time.January, 10), 0},
		{"due tomorrow", date(2024, time.January, 11), 1},
		{"due yesterday", date(2024, time.January, 9), -1},
		{"due in a week", date(2024, time.January, 17), 7},
		{"a week late", date(2024, time.January, 3), -7},
		{"across month boundary", date(2024, time.February, 1), 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilDue(tt.due, now); got != tt.want {
				t.Errorf("DaysUntilDue(%v, %v) = %d, want %d", tt.due, now, got, tt.want)
			}
		})
	}
}

func TestDaysUntilDueIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2024, time.January, 10, 23, 55, 0, 0, time.UTC)
	due := time.Date(2024, time.January, 10, 0, 5, 0, 0, time.UTC)

	if got := DaysUntilDue(due, now); got != 0 {
		t.Errorf("expected 0 for same calendar day, got %d", got)
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

	if !IsToday(time.Date(2024, time.June, 15, 0, 1, 0, 0, time.UTC), now) {
		t.Error("same calendar day should be today")
	}
	if IsToday(time.Date(2024, time.June, 16, 0, 1, 0, 0, time.UTC), now) {
		t.Error("next day should not be today")
	}
	if IsToday(time.Date(2023, time.June, 15, 14, 30, 0, 0, time.UTC), now) {
		t.Error("same day of a different year should not be today")
	}
}

// fixture: reference time 2024-01-10
func sampleTasks() []entity.Task {
	now := date(2024, time.January, 10)
	return []entity.Task{
		{
			ID:        "t1",
			Text:      "Buy groceries",
			Priority:  entity.PriorityMedium,
			Category:  entity.CategoryShopping,
			DueDate:   datePtr(2024, time.January, 10),
			CreatedAt: now.Add(-5 * time.Hour),
		},
		{
			ID:          "t2",
			Text:        "Quarterly report",
			Description: strPtr("Include the FOO numbers"),
			Priority:    entity.PriorityHigh,
			Category:    entity.CategoryWork,
			DueDate:     datePtr(2024, time.January, 12),
			CreatedAt:   now.Add(-4 * time.Hour),
		},
		{
			ID:        "t3",
			Text:      "Dentist appointment",
			Priority:  entity.PriorityHigh,
			Category:  entity.CategoryHealth,
			DueDate:   datePtr(2024, time.January, 8),
			CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ID:        "t4",
			Text:      "Read a book",
			Priority:  entity.PriorityLow,
			Category:  entity.CategoryHobby,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        "t5",
			Text:      "Old completed chore with foo in it",
			Completed: true,
			Priority:  entity.PriorityHigh,
			Category:  entity.CategoryPersonal,
			DueDate:   datePtr(2024, time.January, 10),
			CreatedAt: now.Add(-1 * time.Hour),
		},
	}
}

func ids(tasks []entity.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func assertIDs(t *testing.T, got []entity.Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestApplyMyDay(t *testing.T) {
	q := Query{View: ViewMyDay, Now: date(2024, time.January, 10)}
	// t5 is due today but completed; t1 is due today and active
	assertIDs(t, Apply(sampleTasks(), q), "t1")
}

func TestApplyImportant(t *testing.T) {
	q := Query{View: ViewImportant, Now: date(2024, time.January, 10)}
	// high-priority actives, newest first
	assertIDs(t, Apply(sampleTasks(), q), "t3", "t2")
}

func TestApplyPlanned(t *testing.T) {
	q := Query{View: ViewPlanned, Now: date(2024, time.January, 10)}
	assertIDs(t, Apply(sampleTasks(), q), "t3", "t2", "t1")
}

func TestApplyDashboardHasNoPrimaryFilter(t *testing.T) {
	q := Query{View: ViewDashboard, Now: date(2024, time.January, 10)}
	assertIDs(t, Apply(sampleTasks(), q), "t5", "t4", "t3", "t2", "t1")
}

func TestApplyUnknownViewBehavesLikeAllTasks(t *testing.T) {
	q := Query{View: View("bogus"), Now: date(2024, time.January, 10)}
	if got := Apply(sampleTasks(), q); len(got) != 5 {
		t.Errorf("expected all 5 tasks, got %d", len(got))
	}
}

func TestApplySearchComposesAfterPrimaryFilter(t *testing.T) {
	// important + "foo": t2 matches via description (case-insensitive),
	// t3 has no description and must not match, t5 contains "foo" but is
	// completed and already excluded by the primary filter
	q := Query{View: ViewImportant, Search: "foo", Now: date(2024, time.January, 10)}
	assertIDs(t, Apply(sampleTasks(), q), "t2")
}

func TestApplySearchMatchesText(t *testing.T) {
	q := Query{View: ViewAllTasks, Search: "GROCER", Now: date(2024, time.January, 10)}
	assertIDs(t, Apply(sampleTasks(), q), "t1")
}

func TestApplySortsNewestFirst(t *testing.T) {
	// hand the engine an oldest-first slice and expect it re-sorted
	tasks := sampleTasks()
	q := Query{View: ViewAllTasks, Now: date(2024, time.January, 10)}
	got := Apply(tasks, q)
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("tasks not in newest-first order: %v", ids(got))
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := ids(tasks)

	Apply(tasks, Query{View: ViewImportant, Search: "foo", Now: date(2024, time.January, 10)})

	after := ids(tasks)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input slice was reordered: %v -> %v", before, after)
		}
	}
}

func TestComputeStats(t *testing.T) {
	now := date(2024, time.January, 10)
	s := ComputeStats(sampleTasks(), now)

	if s.MyDay != 1 {
		t.Errorf("MyDay = %d, want 1", s.MyDay)
	}
	if s.Important != 2 {
		t.Errorf("Important = %d, want 2", s.Important)
	}
	if s.Planned != 3 {
		t.Errorf("Planned = %d, want 3", s.Planned)
	}
	// AllTasks deliberately counts only non-completed tasks
	if s.AllTasks != 4 {
		t.Errorf("AllTasks = %d, want 4", s.AllTasks)
	}
	if s.Completed != 1 {
		t.Errorf("Completed = %d, want 1", s.Completed)
	}
	if s.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", s.Overdue)
	}
	if s.CompletionRate != 20 {
		t.Errorf("CompletionRate = %d, want 20", s.CompletionRate)
	}
}

func TestComputeStatsCompletionRate(t *testing.T) {
	now := date(2024, time.January, 10)

	tasks := []entity.Task{
		{ID: "a", Completed: true},
		{ID: "b", Completed: true},
		{ID: "c"},
		{ID: "d"},
		{ID: "e"},
	}

	if s := ComputeStats(tasks, now); s.CompletionRate != 40 {
		t.Errorf("CompletionRate = %d, want 40", s.CompletionRate)
	}

	if s := ComputeStats(nil, now); s.CompletionRate != 0 {
		t.Errorf("CompletionRate on empty collection = %d, want 0", s.CompletionRate)
	}
}

func TestComputeStatsCompletedOverdueNotCounted(t *testing.T) {
	now := date(2024, time.January, 10)
	tasks := []entity.Task{
		{ID: "a", Completed: true, DueDate: datePtr(2024, time.January, 1)},
	}

	if s := ComputeStats(tasks, now); s.Overdue != 0 {
		t.Errorf("completed task counted as overdue: %d", s.Overdue)
	}
}

func TestCountByCategory(t *testing.T) {
	counts := CountByCategory(sampleTasks())

	if counts[entity.CategoryWork] != 1 {
		t.Errorf("work = %d, want 1", counts[entity.CategoryWork])
	}
	// t5 is personal but completed
	if counts[entity.CategoryPersonal] != 0 {
		t.Errorf("personal = %d, want 0", counts[entity.CategoryPersonal])
	}
	if counts[entity.CategoryTravel] != 0 {
		t.Errorf("travel should be present and zero, got %d", counts[entity.CategoryTravel])
	}
	if len(counts) != len(entity.Categories) {
		t.Errorf("expected %d categories, got %d", len(entity.Categories), len(counts))
	}
}
