// Package server initializes and runs the gophtodo server: it selects the
// storage backend, applies migrations, builds the services and serves the
// HTTP API until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/config"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtodo/internal/server/rest"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	userService *services.UserService
	taskService *services.TaskService
}

// newPostgresManager is swapped in tests.
var newPostgresManager = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	return repomanager.NewPostgresRepositoryManager(ctx, dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		rm  repomanager.RepositoryManager
		err error
	)

	switch c.StorageType {
	case config.StorageMemory:
		rm = repomanager.NewInMemoryRepositoryManager()
	case config.StoragePostgres, "":
		rm, err = newPostgresManager(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.StorageType)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.SessionTokenValidityDuration)

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		userService: services.NewUserService(rm, tokens),
		taskService: services.NewTaskService(rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.taskService, rest.Options{
		Production:           app.config.Production,
		AllowedOrigin:        app.config.AllowedOrigin,
		SignupRateLimit:      app.config.SignupRateLimit,
		SignupRateWindow:     app.config.SignupRateWindow,
		EnforceTaskOwnership: app.config.EnforceTaskOwnership,
		ShutdownTimeout:      app.config.ShutdownTimeout,
	})
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// waits for the HTTP server to drain and closes storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"storage", app.config.StorageType,
		"production", app.config.Production,
		"enforce_task_ownership", app.config.EnforceTaskOwnership)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(context.Background(), "closing storage", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
