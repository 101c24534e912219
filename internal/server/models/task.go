package models

import "slices"

// Priority ranks a task. The zero value is not valid; see DefaultPriority.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"

	DefaultPriority = PriorityMedium
)

var priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of High, Medium or Low.
func (p Priority) Valid() bool {
	return slices.Contains(priorities, p)
}

// Task is a to-do item owned by exactly one user.
//
// CreatedDate and CreatedTime are human-readable stamps in server-local time
// (for example "1/2/2025" and "03:04 PM"). DueDate and DueTime are stored
// as given by the client.
type Task struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"ownerId"`
	Description string   `json:"description"`
	CreatedDate string   `json:"createdDate"`
	CreatedTime string   `json:"createdTime"`
	DueDate     string   `json:"dueDate"`
	DueTime     string   `json:"dueTime"`
	Priority    Priority `json:"priority"`
	Completed   bool     `json:"completed"`
}

// TaskPatch carries a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	DueTime     *string   `json:"dueTime,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Description == nil && p.DueDate == nil && p.DueTime == nil && p.Priority == nil && p.Completed == nil
}

// Apply copies the non-nil fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
