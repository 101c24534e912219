// Package models defines the wire types the CLI exchanges with the server.
package models

import (
	"fmt"
	"strings"
)

// Task mirrors the server's task JSON.
type Task struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Description string `json:"description"`
	CreatedDate string `json:"createdDate"`
	CreatedTime string `json:"createdTime"`
	DueDate     string `json:"dueDate"`
	DueTime     string `json:"dueTime"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
}

// String renders the task as one line of the task listing.
func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s  %-6s  due %s %s  %s", mark, t.ID, t.Priority, t.DueDate, t.DueTime, t.Description)
}

// NewTask is the body of a create request. Priority may be empty.
type NewTask struct {
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	DueTime     string `json:"dueTime"`
	Priority    string `json:"priority,omitempty"`
	Completed   bool   `json:"completed"`
}

// TaskPatch is the body of an edit request; nil fields are not sent.
type TaskPatch struct {
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	DueTime     *string `json:"dueTime,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Description == nil && p.DueDate == nil && p.DueTime == nil && p.Priority == nil && p.Completed == nil
}

// NormalizePriority maps case-insensitive input such as "high" onto the
// server's spelling. Unknown values are returned unchanged for the server
// to reject.
func NormalizePriority(p string) string {
	for _, known := range []string{"High", "Medium", "Low"} {
		if strings.EqualFold(p, known) {
			return known
		}
	}
	return p
}
