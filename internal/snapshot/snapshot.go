// Package snapshot maintains the JSON mirror of the task set
// (_METAINFO.json) under the user-chosen storage directory, and rehydrates
// tasks from it when switching directories. The mirror is a derived,
// eventually-consistent copy; the primary store stays authoritative.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/LoveFromCodes/todo-list/internal/filelock"
	"github.com/LoveFromCodes/todo-list/internal/task"
)

const (
	// MetaFileName is the fixed snapshot file name within the base directory.
	MetaFileName = "_METAINFO.json"

	lockFileName = ".lock"
	fileMode     = 0o600
)

// Document is the top-level snapshot layout.
type Document struct {
	ExportDate     int64             `json:"exportDate"`
	TotalTasks     int               `json:"totalTasks"`
	CompletedTasks int               `json:"completedTasks"`
	PendingTasks   int               `json:"pendingTasks"`
	Tasks          []json.RawMessage `json:"tasks"`
}

// Record is the per-task snapshot entry. Optional fields are omitted
// rather than written as null.
type Record struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	IsCompleted    bool   `json:"isCompleted"`
	Priority       string `json:"priority"`
	CreatedAt      int64  `json:"createdAt"`
	Note           string `json:"note"`
	DueDate        *int64 `json:"dueDate,omitempty"`
	CompletedAt    *int64 `json:"completedAt,omitempty"`
	AttachmentPath string `json:"attachmentPath,omitempty"`
}

// BuildDocument projects the task set into a snapshot document. Tasks are
// ordered by creation time then ID so that exporting an unchanged set
// produces a byte-identical tasks array.
func BuildDocument(tasks []*task.Task, now time.Time) (*Document, error) {
	sorted := make([]*task.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	doc := &Document{
		ExportDate: now.Unix(),
		TotalTasks: len(sorted),
	}
	for _, t := range sorted {
		if t.IsCompleted {
			doc.CompletedTasks++
		} else {
			doc.PendingTasks++
		}
		rec := Record{
			ID:             t.ID.String(),
			Title:          t.Title,
			IsCompleted:    t.IsCompleted,
			Priority:       string(t.Priority),
			CreatedAt:      t.CreatedAt.Unix(),
			Note:           t.Note,
			DueDate:        unixPtr(t.DueDate),
			CompletedAt:    unixPtr(t.CompletedAt),
			AttachmentPath: t.AttachmentPath,
		}
		raw, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling task %s: %w", t.ID, err)
		}
		doc.Tasks = append(doc.Tasks, raw)
	}
	return doc, nil
}

// Export writes the full task set to _METAINFO.json in baseDir,
// overwriting any previous snapshot. An advisory lock on the directory
// serializes concurrent exports and directory switches; last write wins.
func Export(baseDir string, tasks []*task.Task) error {
	unlock, err := filelock.Lock(filepath.Join(baseDir, lockFileName))
	if err != nil {
		return fmt.Errorf("acquiring snapshot lock: %w", err)
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	doc, err := BuildDocument(tasks, time.Now())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	path := filepath.Join(baseDir, MetaFileName)
	if err := os.WriteFile(path, append(data, '\n'), fileMode); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Import reads the snapshot from baseDir and reconstructs its tasks.
// A missing, unparsable, or schema-invalid document yields an empty
// result and a nil error: the caller keeps its existing data and should
// export its own state to seed the directory. Entries missing a required
// field are skipped silently.
func Import(baseDir string) ([]*task.Task, error) {
	path := filepath.Join(baseDir, MetaFileName)
	data, err := os.ReadFile(path) //nolint:gosec // snapshot path from configured base dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	if err := validateDocument(data); err != nil {
		// Malformed snapshots are "no data", never fatal.
		return nil, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil
	}

	var tasks []*task.Task
	for _, raw := range doc.Tasks {
		t, ok := decodeRecord(raw)
		if !ok {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// decodeRecord reconstructs one task from a snapshot entry. Entries
// missing any required field are rejected; an unparseable id mints a
// fresh identifier (lossy recovery, not an error).
func decodeRecord(raw json.RawMessage) (*task.Task, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	for _, required := range []string{"id", "title", "isCompleted", "priority", "createdAt"} {
		if _, ok := fields[required]; !ok {
			return nil, false
		}
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}

	id, err := uuid.Parse(rec.ID)
	if err != nil {
		id = uuid.New()
	}

	t := &task.Task{
		ID:             id,
		Title:          rec.Title,
		IsCompleted:    rec.IsCompleted,
		Priority:       task.Priority(rec.Priority),
		CreatedAt:      time.Unix(rec.CreatedAt, 0),
		Note:           rec.Note,
		AttachmentPath: rec.AttachmentPath,
	}
	if rec.DueDate != nil {
		ts := time.Unix(*rec.DueDate, 0)
		t.DueDate = &ts
	}
	if rec.CompletedAt != nil {
		ts := time.Unix(*rec.CompletedAt, 0)
		t.CompletedAt = &ts
	}
	return t, true
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	u := t.Unix()
	return &u
}
