// Package report generates textual work reports: it selects tasks in a
// reporting window, renders them into a prompt, and delegates the prose
// to an external text-generation service.
package report

import (
	"time"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

// Period selects the reporting window length.
type Period string

// Valid report periods.
const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return Period(s), true
	}
	return "", false
}

// WindowFor computes the [start, end) range for a period anchored at now.
// Weeks begin on weekStart at midnight, months on the 1st, years on Jan 1,
// all in now's location.
func WindowFor(p Period, now time.Time, weekStart time.Weekday) (start, end time.Time) {
	switch p {
	case PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	case PeriodYearly:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0)
	default: // weekly
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
		start = day.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	}
	return start, end
}

// InWindow reports whether any of the task's createdAt, completedAt, or
// dueDate falls within [start, end).
func InWindow(t *task.Task, start, end time.Time) bool {
	if inRange(t.CreatedAt, start, end) {
		return true
	}
	if t.CompletedAt != nil && inRange(*t.CompletedAt, start, end) {
		return true
	}
	if t.DueDate != nil && inRange(*t.DueDate, start, end) {
		return true
	}
	return false
}

// FilterWindow returns the tasks whose timestamps intersect [start, end).
func FilterWindow(tasks []*task.Task, start, end time.Time) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if InWindow(t, start, end) {
			result = append(result, t)
		}
	}
	return result
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
