// Package task defines the to-do item entity and its mutation helpers.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the task importance level.
type Priority string

// Valid priorities.
const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
)

// Task represents a single to-do item. ID and CreatedAt are set once at
// creation and never change; CompletedAt tracks IsCompleted (non-nil iff
// the task is completed, maintained by Complete/Reopen).
type Task struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	IsCompleted    bool       `json:"isCompleted"`
	Priority       Priority   `json:"priority"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Note           string     `json:"note"`
	AttachmentPath string     `json:"attachmentPath,omitempty"`
}

// New creates a task with a fresh ID and the given title. The title must
// be non-empty after trimming; other fields take their zero defaults.
func New(title string) (*Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	return &Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  PriorityNormal,
		CreatedAt: time.Now().Truncate(time.Second),
	}, nil
}

// Complete marks the task completed and stamps CompletedAt.
// Calling it on a completed task is a no-op.
func (t *Task) Complete() {
	if t.IsCompleted {
		return
	}
	now := time.Now().Truncate(time.Second)
	t.IsCompleted = true
	t.CompletedAt = &now
}

// Reopen clears the completion flag and CompletedAt.
func (t *Task) Reopen() {
	t.IsCompleted = false
	t.CompletedAt = nil
}

// NeedsReminder reports whether the task should have a pending reminder:
// incomplete with a due date set.
func (t *Task) NeedsReminder() bool {
	return !t.IsCompleted && t.DueDate != nil
}

// Status returns the display status string.
func (t *Task) Status() string {
	if t.IsCompleted {
		return "done"
	}
	return "open"
}
