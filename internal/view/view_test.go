package view

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

func mkTask(title string, created time.Time, due *time.Time, prio task.Priority, completed bool) *task.Task {
	t := &task.Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  prio,
		CreatedAt: created,
	}
	t.DueDate = due
	if completed {
		t.IsCompleted = true
		c := created.Add(time.Hour)
		t.CompletedAt = &c
	}
	return t
}

func datePtr(t time.Time) *time.Time { return &t }

func titles(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func equalTitles(got []*task.Task, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, t := range got {
		if t.Title != want[i] {
			return false
		}
	}
	return true
}

func TestFilterByCompletion(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tasks := []*task.Task{
		mkTask("Buy milk", base, nil, task.PriorityNormal, false),
		mkTask("File taxes", base.Add(time.Minute), nil, task.PriorityNormal, true),
	}

	tests := []struct {
		filter FilterOption
		want   []string
	}{
		{FilterIncomplete, []string{"Buy milk"}},
		{FilterCompleted, []string{"File taxes"}},
		{FilterAll, []string{"Buy milk", "File taxes"}},
	}
	for _, tc := range tests {
		got := Apply(tasks, Options{Filter: tc.filter, Sort: SortCreationDate, Ascending: true})
		if !equalTitles(got, tc.want) {
			t.Errorf("filter %s: got %v, want %v", tc.filter, titles(got), tc.want)
		}
	}
}

func TestSearchIsCaseAndDiacriticInsensitive(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tasks := []*task.Task{
		mkTask("Visit the Café", base, nil, task.PriorityNormal, false),
		mkTask("Water plants", base.Add(time.Minute), nil, task.PriorityNormal, false),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Visit the Café", "Water plants"}},
		{"cafe", []string{"Visit the Café"}},
		{"CAFÉ", []string{"Visit the Café"}},
		{"plants", []string{"Water plants"}},
		{"missing", nil},
	}
	for _, tc := range tests {
		got := Apply(tasks, Options{Filter: FilterAll, Search: tc.query, Sort: SortCreationDate, Ascending: true})
		if !equalTitles(got, tc.want) {
			t.Errorf("search %q: got %v, want %v", tc.query, titles(got), tc.want)
		}
	}
}

func TestSortDueDateNilPlacement(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	dated := mkTask("dated", base, datePtr(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)), task.PriorityNormal, false)
	undated := mkTask("undated", base.Add(time.Minute), nil, task.PriorityNormal, false)
	tasks := []*task.Task{undated, dated}

	asc := Apply(tasks, Options{Filter: FilterAll, Sort: SortDueDate, Ascending: true})
	if !equalTitles(asc, []string{"dated", "undated"}) {
		t.Errorf("ascending: got %v, want [dated undated]", titles(asc))
	}

	desc := Apply(tasks, Options{Filter: FilterAll, Sort: SortDueDate, Ascending: false})
	if !equalTitles(desc, []string{"undated", "dated"}) {
		t.Errorf("descending: got %v, want [undated dated]", titles(desc))
	}
}

func TestSortDueDateUndatedFallBackToCreated(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	older := mkTask("older", base, nil, task.PriorityNormal, false)
	newer := mkTask("newer", base.Add(time.Hour), nil, task.PriorityNormal, false)
	tasks := []*task.Task{newer, older}

	asc := Apply(tasks, Options{Filter: FilterAll, Sort: SortDueDate, Ascending: true})
	if !equalTitles(asc, []string{"older", "newer"}) {
		t.Errorf("ascending: got %v, want [older newer]", titles(asc))
	}

	desc := Apply(tasks, Options{Filter: FilterAll, Sort: SortDueDate, Ascending: false})
	if !equalTitles(desc, []string{"newer", "older"}) {
		t.Errorf("descending: got %v, want [newer older]", titles(desc))
	}
}

func TestSortDueDateComparesDatedPairs(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	early := mkTask("early", base, datePtr(base.Add(24*time.Hour)), task.PriorityNormal, false)
	late := mkTask("late", base, datePtr(base.Add(72*time.Hour)), task.PriorityNormal, false)
	tasks := []*task.Task{late, early}

	asc := Apply(tasks, Options{Filter: FilterAll, Sort: SortDueDate, Ascending: true})
	if !equalTitles(asc, []string{"early", "late"}) {
		t.Errorf("ascending: got %v, want [early late]", titles(asc))
	}

	desc := Apply(tasks, Options{Filter: FilterAll, Sort: SortDueDate, Ascending: false})
	if !equalTitles(desc, []string{"late", "early"}) {
		t.Errorf("descending: got %v, want [late early]", titles(desc))
	}
}

func TestSortPriorityGroupsThenDueRule(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tasks := []*task.Task{
		mkTask("normal-undated", base, nil, task.PriorityNormal, false),
		mkTask("important-late", base, datePtr(base.Add(72*time.Hour)), task.PriorityImportant, false),
		mkTask("important-early", base, datePtr(base.Add(24*time.Hour)), task.PriorityImportant, false),
		mkTask("normal-dated", base, datePtr(base.Add(48*time.Hour)), task.PriorityNormal, false),
	}

	desc := Apply(tasks, Options{Filter: FilterAll, Sort: SortPriority, Ascending: false})
	want := []string{"important-early", "important-late", "normal-dated", "normal-undated"}
	if !equalTitles(desc, want) {
		t.Errorf("descending: got %v, want %v", titles(desc), want)
	}

	// Descending places every important task before every normal task.
	seenNormal := false
	for _, tk := range desc {
		if tk.Priority == task.PriorityNormal {
			seenNormal = true
		} else if seenNormal {
			t.Fatalf("important task %q after a normal task", tk.Title)
		}
	}

	asc := Apply(tasks, Options{Filter: FilterAll, Sort: SortPriority, Ascending: true})
	if asc[len(asc)-1].Priority != task.PriorityImportant {
		t.Errorf("ascending should place important tasks last, got %v", titles(asc))
	}
}

func TestSortCreationDate(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	first := mkTask("first", base, nil, task.PriorityNormal, false)
	second := mkTask("second", base.Add(time.Hour), nil, task.PriorityNormal, false)
	tasks := []*task.Task{second, first}

	asc := Apply(tasks, Options{Filter: FilterAll, Sort: SortCreationDate, Ascending: true})
	if !equalTitles(asc, []string{"first", "second"}) {
		t.Errorf("ascending: got %v", titles(asc))
	}
	desc := Apply(tasks, Options{Filter: FilterAll, Sort: SortCreationDate, Ascending: false})
	if !equalTitles(desc, []string{"second", "first"}) {
		t.Errorf("descending: got %v", titles(desc))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	a := mkTask("a", base.Add(time.Hour), nil, task.PriorityNormal, false)
	b := mkTask("b", base, nil, task.PriorityNormal, false)
	tasks := []*task.Task{a, b}

	Apply(tasks, Options{Filter: FilterAll, Sort: SortCreationDate, Ascending: true})

	if tasks[0] != a || tasks[1] != b {
		t.Error("input slice order changed")
	}
}

func TestParseOptions(t *testing.T) {
	if _, ok := ParseFilter("incomplete"); !ok {
		t.Error("incomplete should parse")
	}
	if _, ok := ParseFilter("bogus"); ok {
		t.Error("bogus filter should not parse")
	}
	if _, ok := ParseSort("priority"); !ok {
		t.Error("priority should parse")
	}
	if _, ok := ParseSort("bogus"); ok {
		t.Error("bogus sort should not parse")
	}
}
