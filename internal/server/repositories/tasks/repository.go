// Package tasks stores task records. Every lookup is scoped by owner: an
// ownerID that does not match the stored task behaves exactly like a
// missing task. An empty ownerID disables the owner filter.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
)

type Repository interface {
	// Create persists task, assigning an ID when empty.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// ListByOwner returns the owner's tasks in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	// GetForUpdate loads a task and, inside a transaction, locks it until
	// the transaction ends.
	GetForUpdate(ctx context.Context, ownerID, id string) (*models.Task, error)
	// Replace overwrites the mutable fields of the stored task with task's.
	Replace(ctx context.Context, task *models.Task) (*models.Task, error)
	SetCompleted(ctx context.Context, ownerID, id string, completed bool) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}
