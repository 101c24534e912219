package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
)

// Creation stamps are human-readable and in server-local time.
const (
	CreatedDateLayout = "1/2/2006"
	CreatedTimeLayout = "03:04 PM"
)

// NewTask holds the client-supplied fields of a task being created.
type NewTask struct {
	Description string
	DueDate     string
	DueTime     string
	Priority    models.Priority
	Completed   bool
}

// TaskService manages tasks on behalf of an owner. Every mutating call takes
// the caller's user id; a task owned by someone else is reported as
// common.ErrorNotFound. An empty ownerID skips the ownership check and is
// only passed when ownership enforcement is switched off.
type TaskService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewTaskService(m repomanager.RepositoryManager) *TaskService {
	return &TaskService{repomanager: m, now: time.Now}
}

// WithClock returns a copy of the service that stamps tasks using now.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	c := *s
	c.now = now
	return &c
}

func (s *TaskService) Create(ctx context.Context, ownerID string, in NewTask) (*models.Task, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: task owner is required", common.ErrorValidation)
	}
	if blank(in.Description) || blank(in.DueDate) || blank(in.DueTime) {
		return nil, fmt.Errorf("%w: description, due date, and due time are required", common.ErrorValidation)
	}

	priority := in.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	if !priority.Valid() {
		return nil, invalidPriority(priority)
	}

	now := s.now()
	task := &models.Task{
		OwnerID:     ownerID,
		Description: in.Description,
		CreatedDate: now.Format(CreatedDateLayout),
		CreatedTime: now.Format(CreatedTimeLayout),
		DueDate:     in.DueDate,
		DueTime:     in.DueTime,
		Priority:    priority,
		Completed:   in.Completed,
	}

	created, err := s.repomanager.Tasks().Create(ctx, task)
	if err != nil {
		return nil, internal("error creating task", err)
	}
	return created, nil
}

func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	list, err := s.repomanager.Tasks().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, internal("error listing tasks", err)
	}
	return list, nil
}

// Update applies patch to the task in one transaction: the stored row is
// locked, merged with the patch and written back.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var updated *models.Task
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		current, err := r.Tasks.GetForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = current
			return nil
		}
		patch.Apply(current)
		updated, err = r.Tasks.Replace(ctx, current)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal("error updating task", err)
	}
	return updated, nil
}

func (s *TaskService) SetCompleted(ctx context.Context, ownerID, id string, completed bool) (*models.Task, error) {
	task, err := s.repomanager.Tasks().SetCompleted(ctx, ownerID, id, completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, internal("error updating task completion status", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repomanager.Tasks().Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return internal("error deleting task", err)
	}
	return nil
}

func validatePatch(p models.TaskPatch) error {
	for name, v := range map[string]*string{"description": p.Description, "due date": p.DueDate, "due time": p.DueTime} {
		if v != nil && blank(*v) {
			return fmt.Errorf("%w: %s must not be empty", common.ErrorValidation, name)
		}
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return invalidPriority(*p.Priority)
	}
	return nil
}

func invalidPriority(p models.Priority) error {
	return fmt.Errorf("%w: priority %q must be one of High, Medium, Low", common.ErrorValidation, p)
}

func internal(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrorInternal, msg, err)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
