// Package reminder maps tasks with due dates to pending one-shot
// notifications. A task has an active reminder iff it is incomplete and
// has a due date; each task holds at most one pending entry, keyed by a
// deterministic identifier derived from its ID.
package reminder

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

// Notifier delivers notifications via the host subsystem.
type Notifier interface {
	// RequestAuthorization asks the host for permission to notify.
	// False means scheduling silently never delivers.
	RequestAuthorization() bool
	// Notify shows a notification immediately.
	Notify(title, body string) error
}

// Key returns the deterministic notification identifier for a task ID.
func Key(id uuid.UUID) string {
	return "task-" + id.String()
}

// Scheduler owns the pending-reminder state machine. All methods are safe
// for concurrent use.
type Scheduler struct {
	notifier   Notifier
	authorized bool

	mu      sync.Mutex
	pending map[uuid.UUID]*time.Timer

	// now is the clock used to compute fire delays (overridable in tests).
	now func() time.Time
}

// New creates a Scheduler and obtains the authorization capability from
// the notifier once at startup.
func New(n Notifier) *Scheduler {
	return &Scheduler{
		notifier:   n,
		authorized: n.RequestAuthorization(),
		pending:    make(map[uuid.UUID]*time.Timer),
		now:        time.Now,
	}
}

// Authorized reports whether the host granted notification delivery.
func (s *Scheduler) Authorized() bool {
	return s.authorized
}

// Schedule transitions a task to the pending state: an existing entry is
// cancelled first (reschedule is cancel-then-schedule, never update in
// place). Tasks that are completed, have no due date, or whose due minute
// has already passed end up with no pending entry.
func (s *Scheduler) Schedule(t *task.Task) {
	s.Cancel(t.ID)

	if !t.NeedsReminder() {
		return
	}

	fireAt := t.DueDate.Truncate(time.Minute)
	delay := fireAt.Sub(s.now())
	if delay < 0 {
		return
	}

	id, title := t.ID, t.Title
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = time.AfterFunc(delay, func() {
		s.fire(id, title)
	})
}

// Cancel removes the pending entry for a task ID. Cancelling an absent
// key is a silent no-op.
func (s *Scheduler) Cancel(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.pending[id]; ok {
		timer.Stop()
		delete(s.pending, id)
	}
}

// CancelAll removes every pending entry.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
}

// Sync reconciles the pending set against a full task list: every task
// that needs a reminder is (re)scheduled, everything else is cancelled.
// Used at daemon startup and when the store changes externally.
func (s *Scheduler) Sync(tasks []*task.Task) {
	keep := make(map[uuid.UUID]bool, len(tasks))
	for _, t := range tasks {
		keep[t.ID] = true
		s.Schedule(t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.pending {
		if !keep[id] {
			timer.Stop()
			delete(s.pending, id)
		}
	}
}

// Has reports whether a task currently has a pending reminder.
func (s *Scheduler) Has(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// PendingCount returns the number of pending reminders.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// TestNotification fires a throwaway notification after the given delay
// to verify authorization and delivery end to end.
func (s *Scheduler) TestNotification(delay time.Duration) {
	time.AfterFunc(delay, func() {
		s.deliver("Test reminder", "This is a test notification")
	})
}

// fire delivers a due reminder and clears its pending entry.
func (s *Scheduler) fire(id uuid.UUID, title string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()

	s.deliver("Task reminder", title)
}

// deliver hands a notification to the host. Unauthorized or failed
// delivery is silent: the reminder simply never appears.
func (s *Scheduler) deliver(title, body string) {
	if !s.authorized {
		return
	}
	if err := s.notifier.Notify(title, body); err != nil {
		fmt.Fprintf(os.Stderr, "reminder delivery failed: %v\n", err)
	}
}
