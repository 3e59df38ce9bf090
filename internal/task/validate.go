package task

import (
	"strings"

	"github.com/LoveFromCodes/todo-list/internal/clierr"
)

// ValidateTitle rejects empty or whitespace-only titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return clierr.New(clierr.InvalidInput, "task title must not be empty")
	}
	return nil
}

// ParsePriority validates and converts a priority string.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityNormal, PriorityImportant:
		return Priority(s), nil
	default:
		return "", clierr.Newf(clierr.InvalidPriority,
			"invalid priority %q; valid: normal, important", s)
	}
}
