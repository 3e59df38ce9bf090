// Package view produces the ordered task sequence shown to the user:
// completion filter, then title search, then sort. Everything here is a
// pure function of its inputs.
package view

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/LoveFromCodes/todo-list/internal/task"
)

// FilterOption selects tasks by completion state.
type FilterOption string

// Valid filter options.
const (
	FilterIncomplete FilterOption = "incomplete"
	FilterCompleted  FilterOption = "completed"
	FilterAll        FilterOption = "all"
)

// SortOption selects the primary sort key.
type SortOption string

// Valid sort options.
const (
	SortDueDate      SortOption = "due"
	SortPriority     SortOption = "priority"
	SortCreationDate SortOption = "created"
)

// Options bundles the view parameters.
type Options struct {
	Filter    FilterOption
	Search    string // case/diacritic-insensitive title substring
	Sort      SortOption
	Ascending bool
}

// Apply filters and sorts tasks per opts. The input slice is not modified;
// the sort is stable.
func Apply(tasks []*task.Task, opts Options) []*task.Task {
	result := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, opts.Filter) && matchesSearch(t, opts.Search) {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j], opts.Sort, opts.Ascending)
	})
	return result
}

func matchesFilter(t *task.Task, f FilterOption) bool {
	switch f {
	case FilterIncomplete:
		return !t.IsCompleted
	case FilterCompleted:
		return t.IsCompleted
	default:
		return true
	}
}

func matchesSearch(t *task.Task, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(fold(t.Title), fold(query))
}

// foldTransform strips combining marks so "café" matches "cafe".
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func less(a, b *task.Task, key SortOption, asc bool) bool {
	switch key {
	case SortPriority:
		if a.Priority == b.Priority {
			return lessByDue(a, b, asc)
		}
		// Ascending puts normal first, descending puts important first.
		if asc {
			return a.Priority == task.PriorityNormal
		}
		return a.Priority == task.PriorityImportant
	case SortCreationDate:
		return lessByCreated(a, b, asc)
	default:
		return lessByDue(a, b, asc)
	}
}

// lessByDue orders by due date. Tasks without a due date sort after dated
// tasks when ascending and before them when descending; two undated tasks
// fall back to creation time.
func lessByDue(a, b *task.Task, asc bool) bool {
	if a.DueDate == nil && b.DueDate == nil {
		return lessByCreated(a, b, asc)
	}
	if a.DueDate == nil {
		return !asc
	}
	if b.DueDate == nil {
		return asc
	}
	if asc {
		return a.DueDate.Before(*b.DueDate)
	}
	return b.DueDate.Before(*a.DueDate)
}

func lessByCreated(a, b *task.Task, asc bool) bool {
	if asc {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return b.CreatedAt.Before(a.CreatedAt)
}

// ParseFilter validates a filter option string.
func ParseFilter(s string) (FilterOption, bool) {
	switch FilterOption(s) {
	case FilterIncomplete, FilterCompleted, FilterAll:
		return FilterOption(s), true
	}
	return "", false
}

// ParseSort validates a sort option string.
func ParseSort(s string) (SortOption, bool) {
	switch SortOption(s) {
	case SortDueDate, SortPriority, SortCreationDate:
		return SortOption(s), true
	}
	return "", false
}
