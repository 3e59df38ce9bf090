package output

import (
	"fmt"
	"io"
	"os"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))

	ts := "  created:" + t.CreatedAt.Format("2006-01-02")
	if t.CompletedAt != nil {
		ts += " completed:" + t.CompletedAt.Format("2006-01-02")
	}
	fmt.Fprintln(w, ts)

	if t.Note != "" {
		fmt.Fprintln(w, "  "+t.Note)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := ShortID(t) + " [" + t.Status() + "/" + string(t.Priority) + "] " + t.Title
	if t.DueDate != nil {
		line += " due:" + t.DueDate.Format("2006-01-02 15:04")
	}
	return line
}
