package task

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const folderDirMode = 0o750

// forbidden filename characters, each replaced with "-" in folder names.
var folderReplacer = strings.NewReplacer(
	"/", "-",
	`\`, "-",
	":", "-",
	"*", "-",
	"?", "-",
	`"`, "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// FolderName returns the attachment folder name for a task:
// <YYYY-MM-DD>-<sanitized-title>, dated by creation time.
func FolderName(t *Task) string {
	return fmt.Sprintf("%s-%s", t.CreatedAt.Format("2006-01-02"), folderReplacer.Replace(t.Title))
}

// EnsureFolder lazily creates the task's attachment folder under baseDir
// and records the path on the task. Returns the folder path.
func EnsureFolder(t *Task, baseDir string) (string, error) {
	if t.AttachmentPath != "" {
		return t.AttachmentPath, nil
	}
	path := filepath.Join(baseDir, FolderName(t))
	if err := os.MkdirAll(path, folderDirMode); err != nil {
		return "", fmt.Errorf("creating attachment folder: %w", err)
	}
	t.AttachmentPath = path
	return path, nil
}
