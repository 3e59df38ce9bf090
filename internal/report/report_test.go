package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

func mk(title string, created time.Time) *task.Task {
	return &task.Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  task.PriorityNormal,
		CreatedAt: created,
	}
}

func TestWindowForWeekly(t *testing.T) {
	// Wednesday 2024-01-10.
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

	start, end := WindowFor(PeriodWeekly, now, time.Monday)
	if !start.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("monday start: got %v", start)
	}
	if !end.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("monday end: got %v", end)
	}

	start, end = WindowFor(PeriodWeekly, now, time.Sunday)
	if !start.Equal(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("sunday start: got %v", start)
	}
	if !end.Equal(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("sunday end: got %v", end)
	}
}

func TestWindowForMonthlyAndYearly(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	start, end := WindowFor(PeriodMonthly, now, time.Monday)
	if !start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) ||
		!end.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("monthly: got [%v, %v)", start, end)
	}

	start, end = WindowFor(PeriodYearly, now, time.Monday)
	if !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) ||
		!end.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("yearly: got [%v, %v)", start, end)
	}
}

func TestInWindowMatchesAnyTimestamp(t *testing.T) {
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	// Created well before the window, completed inside it.
	completedAt := start.Add(36 * time.Hour)
	tk := mk("old task finished this week", start.AddDate(0, -2, 0))
	tk.IsCompleted = true
	tk.CompletedAt = &completedAt
	if !InWindow(tk, start, end) {
		t.Error("task completed inside the window should be included")
	}

	// Only due date inside the window.
	due := start.Add(72 * time.Hour)
	dueOnly := mk("due this week", start.AddDate(0, -1, 0))
	dueOnly.DueDate = &due
	if !InWindow(dueOnly, start, end) {
		t.Error("task due inside the window should be included")
	}

	// Nothing inside the window.
	outside := mk("outside", start.AddDate(0, -1, 0))
	if InWindow(outside, start, end) {
		t.Error("task with no timestamp in window should be excluded")
	}

	// End is exclusive.
	atEnd := mk("at end", end)
	if InWindow(atEnd, start, end) {
		t.Error("end boundary is exclusive")
	}
	atStart := mk("at start", start)
	if !InWindow(atStart, start, end) {
		t.Error("start boundary is inclusive")
	}
}

func TestRenderTasks(t *testing.T) {
	due := time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC)
	tk := mk("Buy milk", time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC))
	tk.DueDate = &due
	tk.Priority = task.PriorityImportant
	tk.Note = "2 liters"

	out := RenderTasks([]*task.Task{tk})
	for _, want := range []string{
		"- Project: Buy milk",
		"Status: pending",
		"Priority: important",
		"Due date: Jan 12, 2024 18:00",
		"Note: 2 liters",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	undated := mk("no due", time.Now())
	if !strings.Contains(RenderTasks([]*task.Task{undated}), "Due date: none") {
		t.Error("undated task should render 'none'")
	}
}

func TestRenderTasksEmptyUsesSentinel(t *testing.T) {
	if got := RenderTasks(nil); got != NoDataSentinel {
		t.Errorf("got %q, want sentinel", got)
	}
}

// fakeGenerator captures the prompt and returns canned text.
type fakeGenerator struct {
	system, user string
	reply        string
	err          error
}

func (f *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	f.system, f.user = system, user
	return f.reply, f.err
}

func TestServiceGenerateWindowsAndDelegates(t *testing.T) {
	gen := &fakeGenerator{reply: "# Weekly Report"}
	svc := NewService(gen, time.Monday)
	svc.now = func() time.Time { return time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC) }

	inWeek := mk("inside", time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC))
	// Created outside the week but completed inside it.
	completedAt := time.Date(2024, 1, 8, 16, 0, 0, 0, time.UTC)
	carried := mk("carried over", time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC))
	carried.IsCompleted = true
	carried.CompletedAt = &completedAt
	outside := mk("outside", time.Date(2023, 11, 1, 10, 0, 0, 0, time.UTC))

	got, err := svc.Generate(context.Background(), PeriodWeekly, []*task.Task{inWeek, carried, outside})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "# Weekly Report" {
		t.Errorf("report: got %q", got)
	}

	if !strings.Contains(gen.user, "inside") || !strings.Contains(gen.user, "carried over") {
		t.Errorf("prompt should include windowed tasks:\n%s", gen.user)
	}
	if strings.Contains(gen.user, "outside") {
		t.Errorf("prompt should exclude out-of-window tasks:\n%s", gen.user)
	}
	if gen.system != SystemPrompt {
		t.Error("system prompt not passed through")
	}
	if !strings.Contains(gen.user, "weekly report") {
		t.Error("prompt framing should name the period")
	}
}

func TestParsePeriod(t *testing.T) {
	for _, ok := range []string{"weekly", "monthly", "yearly"} {
		if _, valid := ParsePeriod(ok); !valid {
			t.Errorf("%s should parse", ok)
		}
	}
	if _, valid := ParsePeriod("daily"); valid {
		t.Error("daily should not parse")
	}
}
