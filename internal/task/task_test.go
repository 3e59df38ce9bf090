package task

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewRequiresTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := New(title); err == nil {
			t.Errorf("New(%q) succeeded, want error", title)
		}
	}

	tk, err := New("buy milk")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tk.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("New did not assign an ID")
	}
	if tk.Priority != PriorityNormal {
		t.Errorf("priority = %q, want normal", tk.Priority)
	}
	if tk.CreatedAt.Nanosecond() != 0 {
		t.Error("CreatedAt not truncated to the second")
	}
}

func TestCompleteReopenInvariant(t *testing.T) {
	tk, _ := New("write report")

	tk.Complete()
	if !tk.IsCompleted || tk.CompletedAt == nil {
		t.Fatal("Complete did not set both IsCompleted and CompletedAt")
	}

	first := *tk.CompletedAt
	tk.Complete() // no-op on an already completed task
	if !tk.CompletedAt.Equal(first) {
		t.Error("Complete on a completed task changed CompletedAt")
	}

	tk.Reopen()
	if tk.IsCompleted || tk.CompletedAt != nil {
		t.Error("Reopen did not clear both IsCompleted and CompletedAt")
	}
}

func TestNeedsReminder(t *testing.T) {
	due := time.Now().Add(time.Hour)

	tests := []struct {
		name      string
		completed bool
		due       *time.Time
		want      bool
	}{
		{"incomplete with due", false, &due, true},
		{"incomplete without due", false, nil, false},
		{"completed with due", true, &due, false},
		{"completed without due", true, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, _ := New("x")
			tk.IsCompleted = tt.completed
			tk.DueDate = tt.due
			if got := tk.NeedsReminder(); got != tt.want {
				t.Errorf("NeedsReminder() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	if _, err := ParsePriority("urgent"); err == nil {
		t.Error("ParsePriority(urgent) succeeded, want error")
	}
	p, err := ParsePriority("important")
	if err != nil || p != PriorityImportant {
		t.Errorf("ParsePriority(important) = %q, %v", p, err)
	}
}

func TestFolderNameSanitizesForbiddenCharacters(t *testing.T) {
	tk, _ := New(`notes: a/b*c?"d"<e>|f\g`)
	tk.CreatedAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	name := FolderName(tk)
	if !strings.HasPrefix(name, "2026-03-14-") {
		t.Errorf("folder name %q missing date prefix", name)
	}
	for _, c := range `/\:*?"<>|` {
		if strings.ContainsRune(name, c) {
			t.Errorf("folder name %q contains forbidden character %q", name, c)
		}
	}
}

func TestEnsureFolderIsLazyAndIdempotent(t *testing.T) {
	base := t.TempDir()
	tk, _ := New("pack boxes")

	path, err := EnsureFolder(tk, base)
	if err != nil {
		t.Fatalf("EnsureFolder: %v", err)
	}
	if tk.AttachmentPath != path {
		t.Errorf("AttachmentPath = %q, want %q", tk.AttachmentPath, path)
	}
	if filepath.Dir(path) != base {
		t.Errorf("folder %q not under base dir", path)
	}

	again, err := EnsureFolder(tk, base)
	if err != nil || again != path {
		t.Errorf("second EnsureFolder = %q, %v; want same path", again, err)
	}
}
