package models

import "time"

// Task represents a single unit of work inside a project. A task may
// reference another task in the same project as its parent, forming a
// shallow hierarchy of subtasks.
type Task struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Assignee string   `json:"assignee"`
	Status   Status   `json:"status"`
	Deadline string   `json:"deadline"`
	Priority Priority `json:"priority"`
	Category string   `json:"category"`
	ParentID *string  `json:"parent_id"`
	Created  string   `json:"created"`
}

// DeadlineLayout is the only accepted deadline format. Keeping deadlines
// in ISO order makes the lexicographic deadline sort date-correct.
const DeadlineLayout = "2006-01-02"

// HasParent reports whether the task is a subtask.
func (t *Task) HasParent() bool {
	return t.ParentID != nil && *t.ParentID != ""
}

// OverdueOn reports whether the task is past its deadline. Tasks with an
// empty or unparseable deadline are never overdue, and completed tasks
// are never overdue.
func (t *Task) OverdueOn(now time.Time) bool {
	if t.Status == StatusComplete || t.Deadline == "" {
		return false
	}
	due, err := time.Parse(DeadlineLayout, t.Deadline)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(today)
}
