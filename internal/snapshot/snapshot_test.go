package snapshot

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

func sampleTasks(t *testing.T) []*task.Task {
	t.Helper()
	base := time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)
	due := base.Add(48 * time.Hour)
	completedAt := base.Add(2 * time.Hour)

	done := &task.Task{
		ID:          uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Title:       "File taxes",
		IsCompleted: true,
		Priority:    task.PriorityImportant,
		CreatedAt:   base,
		CompletedAt: &completedAt,
		Note:        "use last year's folder",
	}
	open := &task.Task{
		ID:        uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"),
		Title:     "Buy milk",
		Priority:  task.PriorityNormal,
		CreatedAt: base.Add(time.Minute),
		DueDate:   &due,
	}
	return []*task.Task{done, open}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tasks := sampleTasks(t)

	if err := Export(dir, tasks); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	got, err := Import(dir)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(got) != len(tasks) {
		t.Fatalf("got %d tasks, want %d", len(got), len(tasks))
	}

	byID := make(map[uuid.UUID]*task.Task, len(got))
	for _, g := range got {
		byID[g.ID] = g
	}
	for _, want := range tasks {
		g, ok := byID[want.ID]
		if !ok {
			t.Fatalf("task %s missing after round-trip", want.ID)
		}
		if g.Title != want.Title || g.IsCompleted != want.IsCompleted || g.Priority != want.Priority {
			t.Errorf("task %s mismatch: %+v", want.ID, g)
		}
		if !g.CreatedAt.Equal(want.CreatedAt.Truncate(time.Second)) {
			t.Errorf("task %s createdAt: got %v, want %v", want.ID, g.CreatedAt, want.CreatedAt)
		}
		if (g.DueDate == nil) != (want.DueDate == nil) {
			t.Errorf("task %s dueDate presence mismatch", want.ID)
		}
		if want.DueDate != nil && !g.DueDate.Equal(want.DueDate.Truncate(time.Second)) {
			t.Errorf("task %s dueDate: got %v, want %v", want.ID, g.DueDate, want.DueDate)
		}
		if g.Note != want.Note {
			t.Errorf("task %s note: got %q, want %q", want.ID, g.Note, want.Note)
		}
	}
}

func TestExportIsIdempotentExcludingExportDate(t *testing.T) {
	tasks := sampleTasks(t)

	doc1, err := BuildDocument(tasks, time.Unix(1000, 0))
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}
	doc2, err := BuildDocument(tasks, time.Unix(2000, 0))
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}

	arr1, err := json.Marshal(doc1.Tasks)
	if err != nil {
		t.Fatal(err)
	}
	arr2, err := json.Marshal(doc2.Tasks)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(arr1, arr2) {
		t.Errorf("tasks arrays differ:\n%s\n%s", arr1, arr2)
	}
}

func TestDocumentCountsAndOmittedFields(t *testing.T) {
	tasks := sampleTasks(t)
	doc, err := BuildDocument(tasks, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}

	if doc.ExportDate != 1700000000 {
		t.Errorf("ExportDate: got %d", doc.ExportDate)
	}
	if doc.TotalTasks != 2 || doc.CompletedTasks != 1 || doc.PendingTasks != 1 {
		t.Errorf("counts: got (%d,%d,%d)", doc.TotalTasks, doc.CompletedTasks, doc.PendingTasks)
	}

	// The open task has no completedAt or attachmentPath; those keys must
	// be absent, not null.
	for _, raw := range doc.Tasks {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			t.Fatal(err)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			t.Fatal(err)
		}
		if !rec.IsCompleted {
			if _, ok := fields["completedAt"]; ok {
				t.Error("pending task should omit completedAt")
			}
		}
		if _, ok := fields["attachmentPath"]; ok {
			t.Error("attachmentPath should be omitted when empty")
		}
	}
}

func TestImportMissingDocumentYieldsEmpty(t *testing.T) {
	got, err := Import(t.TempDir())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d tasks, want 0", len(got))
	}
}

func TestImportMalformedDocumentYieldsEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"tasks": "nope"}`},
		{"missing counts", `{"tasks": []}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, MetaFileName), []byte(tc.body), 0o600); err != nil {
				t.Fatal(err)
			}
			got, err := Import(dir)
			if err != nil {
				t.Fatalf("Import failed: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("got %d tasks, want 0", len(got))
			}
		})
	}
}

func TestImportSkipsEntriesMissingRequiredFields(t *testing.T) {
	dir := t.TempDir()
	body := `{
		"exportDate": 1700000000,
		"totalTasks": 3,
		"completedTasks": 0,
		"pendingTasks": 3,
		"tasks": [
			{"id": "11111111-2222-3333-4444-555555555555", "title": "keep me", "isCompleted": false, "priority": "normal", "createdAt": 1700000000},
			{"title": "no id", "isCompleted": false, "priority": "normal", "createdAt": 1700000000},
			{"id": "22222222-2222-3333-4444-555555555555", "isCompleted": false, "priority": "normal", "createdAt": 1700000000}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, MetaFileName), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Import(dir)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "keep me" {
		t.Errorf("got %d tasks, want just 'keep me'", len(got))
	}
	if got[0].Note != "" {
		t.Errorf("missing note should default to empty, got %q", got[0].Note)
	}
}

func TestImportMintsFreshIDForUnparseable(t *testing.T) {
	dir := t.TempDir()
	body := `{
		"exportDate": 1700000000,
		"totalTasks": 1,
		"completedTasks": 0,
		"pendingTasks": 1,
		"tasks": [
			{"id": "not-a-uuid", "title": "recovered", "isCompleted": false, "priority": "normal", "createdAt": 1700000000}
		]
	}`
	if err := os.WriteFile(filepath.Join(dir, MetaFileName), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Import(dir)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tasks, want 1", len(got))
	}
	if got[0].ID == uuid.Nil {
		t.Error("minted ID should not be nil")
	}
	if got[0].Title != "recovered" {
		t.Errorf("title: got %q", got[0].Title)
	}
}
