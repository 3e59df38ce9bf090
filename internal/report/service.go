package report

import (
	"context"
	"time"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

// Generator produces the report text for a prompt. *Client satisfies it;
// tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Service windows tasks, builds the prompt, and delegates to the
// text-generation service. The returned text is the report verbatim; no
// local post-processing.
type Service struct {
	gen       Generator
	weekStart time.Weekday

	// now anchors report windows (overridable in tests).
	now func() time.Time
}

// NewService creates a report service.
func NewService(gen Generator, weekStart time.Weekday) *Service {
	return &Service{gen: gen, weekStart: weekStart, now: time.Now}
}

// Generate builds and runs a report for the period over the full task
// set. Failures surface as a single error; no retry happens here.
func (s *Service) Generate(ctx context.Context, p Period, tasks []*task.Task) (string, error) {
	start, end := WindowFor(p, s.now(), s.weekStart)
	included := FilterWindow(tasks, start, end)
	prompt := BuildPrompt(p, RenderTasks(included))
	return s.gen.Generate(ctx, SystemPrompt, prompt)
}
