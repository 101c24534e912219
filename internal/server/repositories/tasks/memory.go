package tasks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps tasks in process memory. Callers always receive
// copies, never pointers into the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*models.Task
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.Task)}
}

func (r *MemoryRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if _, exists := r.byID[task.ID]; exists {
		return nil, common.ErrorAlreadyExists
	}

	stored := *task
	r.byID[task.ID] = &stored
	r.order = append(r.order, task.ID)

	return task, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Task, 0)
	for _, id := range r.order {
		t := r.byID[id]
		if t.OwnerID == ownerID {
			c := *t
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *MemoryRepository) GetForUpdate(ctx context.Context, ownerID, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, err := r.lookup(ownerID, id)
	if err != nil {
		return nil, err
	}
	c := *t
	return &c, nil
}

func (r *MemoryRepository) Replace(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := r.lookup("", task.ID)
	if err != nil {
		return nil, err
	}
	t.Description = task.Description
	t.DueDate = task.DueDate
	t.DueTime = task.DueTime
	t.Priority = task.Priority
	t.Completed = task.Completed

	c := *t
	return &c, nil
}

func (r *MemoryRepository) SetCompleted(ctx context.Context, ownerID, id string, completed bool) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, err := r.lookup(ownerID, id)
	if err != nil {
		return nil, err
	}
	t.Completed = completed

	c := *t
	return &c, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(ownerID, id); err != nil {
		return err
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// lookup must be called with r.mu held.
func (r *MemoryRepository) lookup(ownerID, id string) (*models.Task, error) {
	t, ok := r.byID[id]
	if !ok || (ownerID != "" && t.OwnerID != ownerID) {
		return nil, common.ErrorNotFound
	}
	return t, nil
}
