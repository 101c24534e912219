// Package repomanager vends the repositories for one storage backend and
// runs multi-step operations atomically against it.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/users"
)

// Repositories is the set of repositories bound to one connection or
// transaction.
type Repositories struct {
	Users users.Repository
	Tasks tasks.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Tasks() tasks.Repository
	// WithTx runs fn with repositories bound to a single transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}
