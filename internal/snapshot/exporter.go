package snapshot

import (
	"fmt"
	"os"
	"sync"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

// Exporter runs snapshot exports in the background with at-most-one
// export in flight and coalescing of queued requests: a request arriving
// while an export runs marks it pending, and the worker re-exports once
// with the then-current state. Mutations therefore never wait on disk,
// and last write wins by construction.
type Exporter struct {
	// Source reads the current task set at export time.
	Source func() ([]*task.Task, error)
	// Dir returns the configured base directory, or "" when none is set
	// (in which case a request is a no-op).
	Dir func() string
	// Logf receives non-fatal export errors; defaults to stderr.
	Logf func(format string, args ...any)

	mu      sync.Mutex
	cond    *sync.Cond
	running bool
	pending bool
}

// NewExporter creates an Exporter over the given task source and
// directory provider.
func NewExporter(source func() ([]*task.Task, error), dir func() string) *Exporter {
	e := &Exporter{Source: source, Dir: dir}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// Request schedules a snapshot export. It never blocks and never fails:
// export errors are logged, not propagated, so the mutation that
// triggered the export always succeeds independently.
func (e *Exporter) Request() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = true
	if e.running {
		return // worker will pick it up
	}
	e.running = true
	go e.run()
}

func (e *Exporter) run() {
	for {
		e.mu.Lock()
		if !e.pending {
			e.running = false
			e.cond.Broadcast()
			e.mu.Unlock()
			return
		}
		e.pending = false
		e.mu.Unlock()

		e.exportOnce()
	}
}

func (e *Exporter) exportOnce() {
	dir := e.Dir()
	if dir == "" {
		return // no base directory configured yet
	}
	tasks, err := e.Source()
	if err != nil {
		e.logf("snapshot export: reading tasks: %v", err)
		return
	}
	if err := Export(dir, tasks); err != nil {
		e.logf("snapshot export: %v", err)
	}
}

// Flush blocks until no export is running or pending. Used on shutdown
// and in tests.
func (e *Exporter) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for e.running || e.pending {
		e.cond.Wait()
	}
}

func (e *Exporter) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
