package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyles = map[string]lipgloss.Style{
		"open": lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		"done": lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	priorityStyles = map[string]lipgloss.Style{
		"important": lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		"normal":    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	statusStyles = map[string]lipgloss.Style{}
	priorityStyles = map[string]lipgloss.Style{}
	overdueStyle = lipgloss.NewStyle()
}

const timeFormat = "2006-01-02 15:04"

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, statusW, prioW, titleW, dueW := 10, 8, 11, 7, 18
	for _, t := range tasks {
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		titleW, "TITLE", dueW, "DUE", "CREATED")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}

		row := fmt.Sprintf("%-*s %s %s %s %s %s",
			idW, ShortID(t),
			padRight(styledValue(t.Status(), statusStyles), statusW),
			padRight(styledValue(string(t.Priority), priorityStyles), prioW),
			padRight(title, titleW),
			padRight(dueDisplay(t), dueW),
			t.CreatedAt.Format("2006-01-02"))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t *task.Task) {
	titleLine := fmt.Sprintf("Task %s: %s", ShortID(t), t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "ID", t.ID.String())
	printField(w, "Status", styledValue(t.Status(), statusStyles))
	printField(w, "Priority", styledValue(string(t.Priority), priorityStyles))
	printField(w, "Due", dueDisplay(t))
	printField(w, "Created", t.CreatedAt.Format(timeFormat))
	if t.CompletedAt != nil {
		printField(w, "Completed", t.CompletedAt.Format(timeFormat))
	}
	if t.AttachmentPath != "" {
		printField(w, "Attachments", t.AttachmentPath)
	}

	if t.Note != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Note)
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// ShortID returns the first UUID group, enough to address a task on the
// command line.
func ShortID(t *task.Task) string {
	return t.ID.String()[:8]
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func dueDisplay(t *task.Task) string {
	if t.DueDate == nil {
		return dimStyle.Render("--")
	}
	s := t.DueDate.Format(timeFormat)
	if !t.IsCompleted && t.DueDate.Before(time.Now()) {
		return overdueStyle.Render(s)
	}
	return s
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
