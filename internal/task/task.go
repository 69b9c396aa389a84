// Package task owns the task collection and its on-disk JSON document.
//
// All timestamps in this package are RFC3339 strings in local time with a
// UTC offset. They are stored as strings on purpose: a malformed timestamp
// in a persisted document degrades sorting and retention checks instead of
// failing a load.
package task

import "time"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusInProgress  Status = "in_progress"
	StatusInterrupted Status = "interrupted"
	StatusCompleted   Status = "completed"
)

// TodoItem is one checklist entry within a task. Items are addressed only by
// position in the ordered list; deleting one shifts later indices down.
type TodoItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Task is a unit of work with a description and an ordered todo list.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Todos       []TodoItem `json:"todos"`
	Status      Status     `json:"status"`
	Created     string     `json:"created"`
	Updated     string     `json:"updated"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	if t.Todos != nil {
		out.Todos = make([]TodoItem, len(t.Todos))
		copy(out.Todos, t.Todos)
	}
	return out
}

// AllDone reports whether the task has at least one todo and every todo is
// marked done.
func (t Task) AllDone() bool {
	if len(t.Todos) == 0 {
		return false
	}
	for _, todo := range t.Todos {
		if !todo.Done {
			return false
		}
	}
	return true
}

// Timestamp formats a time in the convention used throughout this package.
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimestamp parses a stored timestamp. The bool is false when the value
// is malformed; callers degrade gracefully rather than erroring.
func ParseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
