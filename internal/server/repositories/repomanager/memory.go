package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. It is used
// for local development and tests; data does not survive a restart.
type InMemoryRepositoryManager struct {
	txMu  sync.Mutex
	users *users.MemoryRepository
	tasks *tasks.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		tasks: tasks.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

// Tasks returns the task store. Its writes wait for a running WithTx, the
// way row locks from GetForUpdate hold them back in PostgreSQL.
func (m *InMemoryRepositoryManager) Tasks() tasks.Repository {
	return &txLockedTasks{Repository: m.tasks, mu: &m.txMu}
}

// WithTx serialises fn against other WithTx callers. There is no rollback:
// writes made before fn fails stay applied.
func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, Repositories{Users: m.users, Tasks: m.tasks})
}

func (m *InMemoryRepositoryManager) Close() error { return nil }

type txLockedTasks struct {
	tasks.Repository
	mu *sync.Mutex
}

func (t *txLockedTasks) Replace(ctx context.Context, task *models.Task) (*models.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Repository.Replace(ctx, task)
}

func (t *txLockedTasks) SetCompleted(ctx context.Context, ownerID, id string, completed bool) (*models.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Repository.SetCompleted(ctx, ownerID, id, completed)
}

func (t *txLockedTasks) Delete(ctx context.Context, ownerID, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Repository.Delete(ctx, ownerID, id)
}
