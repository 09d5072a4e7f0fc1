package models

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps a stored string onto a Priority, defaulting to medium
// for anything unrecognized.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s)
	}
	return PriorityMedium
}

// StatusFilter selects which tasks are visible by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// Task represents a single task. The JSON field names are the persisted
// record shape and must stay stable.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate,omitempty"` // YYYY-MM-DD, empty when unset
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Completed   bool     `json:"completed"`
}

// IsOverdue returns true if the task is past its due date and not completed.
func (t Task) IsOverdue() bool {
	if t.DueDate == "" || t.Completed {
		return false
	}
	return t.DueDate < time.Now().Format("2006-01-02")
}

// IsDueToday returns true if the task's due date is today.
func (t Task) IsDueToday() bool {
	if t.DueDate == "" {
		return false
	}
	return t.DueDate == time.Now().Format("2006-01-02")
}

// TaskDraft holds the user-entered fields of a task before it is added to
// the store. The id and completion state are assigned by the store.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     string
	Priority    Priority
	Category    string
}

// Session is the simulated authenticated identity.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
