package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

var errDB = errors.New("db down")

// brokenUsers fails every call with err.
type brokenUsers struct{ err error }

func (b brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, b.err }
func (b brokenUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, b.err
}
func (b brokenUsers) GetUserByID(context.Context, string) (*models.User, error) { return nil, b.err }

// brokenTasks fails every call with err.
type brokenTasks struct{ err error }

func (b brokenTasks) Create(context.Context, *models.Task) (*models.Task, error) { return nil, b.err }
func (b brokenTasks) ListByOwner(context.Context, string) ([]*models.Task, error) {
	return nil, b.err
}
func (b brokenTasks) GetForUpdate(context.Context, string, string) (*models.Task, error) {
	return nil, b.err
}
func (b brokenTasks) Replace(context.Context, *models.Task) (*models.Task, error) { return nil, b.err }
func (b brokenTasks) SetCompleted(context.Context, string, string, bool) (*models.Task, error) {
	return nil, b.err
}
func (b brokenTasks) Delete(context.Context, string, string) error { return b.err }

type fakeRepoManager struct {
	u users.Repository
	t tasks.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Users() users.Repository             { return m.u }
func (m *fakeRepoManager) Tasks() tasks.Repository             { return m.t }
func (m *fakeRepoManager) Close() error                        { return nil }
func (m *fakeRepoManager) WithTx(ctx context.Context, fn func(context.Context, repomanager.Repositories) error) error {
	return fn(ctx, repomanager.Repositories{Users: m.u, Tasks: m.t})
}
