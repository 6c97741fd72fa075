package models

import "strings"

// Status represents a task's position in the workflow.
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusComplete   Status = "Complete"
)

// ValidStatuses returns all valid status values in workflow order.
func ValidStatuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusComplete}
}

// IsValidStatus returns true if s is one of the enumerated statuses.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusComplete:
		return true
	default:
		return false
	}
}

// CycleStatus advances a status one step through the toggle order used
// by the per-user checklist: To Do → In Progress → Complete. Cycling a
// completed task returns it to In Progress rather than To Do, so
// un-completing is an undo, not a full reset.
func CycleStatus(s Status) Status {
	switch s {
	case StatusToDo:
		return StatusInProgress
	case StatusInProgress:
		return StatusComplete
	case StatusComplete:
		return StatusInProgress
	default:
		return StatusInProgress
	}
}

// Priority represents a task's urgency level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// IsValidPriority returns true if p is one of the enumerated priorities.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: High sorts before Medium before
// Low. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// NormalizeName is the single name-matching policy for assignees and
// members: comparisons are whitespace-trimmed and case-insensitive.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
