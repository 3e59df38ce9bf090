package report

import (
	"fmt"
	"strings"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

// NoDataSentinel replaces an empty task block so the model is told there
// is nothing to report rather than receiving an empty document.
const NoDataSentinel = "No task data in this period."

// periodLabels name each period in report prose.
var periodLabels = map[Period]string{
	PeriodWeekly:  "weekly report",
	PeriodMonthly: "monthly report",
	PeriodYearly:  "yearly report",
}

// RenderTasks renders the included tasks as fixed-field text blocks.
func RenderTasks(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return NoDataSentinel
	}

	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "- Project: %s\n", t.Title)
		fmt.Fprintf(&b, "  Status: %s\n", statusLabel(t))
		fmt.Fprintf(&b, "  Priority: %s\n", priorityLabel(t.Priority))
		fmt.Fprintf(&b, "  Due date: %s\n", dueLabel(t))
		if t.Note != "" {
			fmt.Fprintf(&b, "  Note: %s\n", t.Note)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// BuildPrompt wraps the rendered task block in the fixed instructional
// framing sent to the text-generation service.
func BuildPrompt(p Period, taskBlock string) string {
	label := periodLabels[p]
	return fmt.Sprintf(`As a task management assistant, generate a %s from the following task data:

%s

Include in the report:
1. The number of completed and pending tasks
2. The task completion rate
3. Task statistics grouped by priority
4. An analysis of work efficiency
5. Suggestions and improvements

Formatting requirements:
- Present all tasks in a table with project name, status, priority, and due date columns
- Provide grouped statistics by project name and priority
- Describe charts where useful (completion-rate pie, priority distribution)

Output well-formed Markdown.`, label, taskBlock)
}

// SystemPrompt is the fixed system message for report generation.
const SystemPrompt = `You are a professional data-analysis assistant that produces clean, structured reports.

Follow these guidelines:
1. Use correct Markdown syntax throughout
2. Tables must use standard Markdown table format
3. Escape HTML tags and special characters appropriately
4. Prefer standard Markdown over HTML tags
5. Produce a complete, readable report`

func statusLabel(t *task.Task) string {
	if t.IsCompleted {
		return "completed"
	}
	return "pending"
}

func priorityLabel(p task.Priority) string {
	if p == task.PriorityImportant {
		return "important"
	}
	return "normal"
}

func dueLabel(t *task.Task) string {
	if t.DueDate == nil {
		return "none"
	}
	return t.DueDate.Format("Jan 2, 2006 15:04")
}
