package client

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

type Client interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Email(ctx context.Context) (string, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.NewTask) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
