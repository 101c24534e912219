// Package rest exposes the gophtodo HTTP/JSON interface: account signup and
// login with a cookie-borne session token, and the caller's task list.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
)

// Options carries the transport settings taken from the server config.
type Options struct {
	Production           bool
	AllowedOrigin        string
	SignupRateLimit      int
	SignupRateWindow     time.Duration
	EnforceTaskOwnership bool
	ShutdownTimeout      time.Duration
}

type Server struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	tasks         *services.TaskService
	opts          Options
	signupLimiter *ipRateLimiter
	handler       http.Handler
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TaskService, opts Options) (*Server, error) {
	if opts.SignupRateLimit <= 0 || opts.SignupRateWindow <= 0 {
		return nil, fmt.Errorf("signup rate limit must be positive, got %d per %s", opts.SignupRateLimit, opts.SignupRateWindow)
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		address:       a,
		logger:        l.With("module", "http_server"),
		users:         us,
		tasks:         ts,
		opts:          opts,
		signupLimiter: newIPRateLimiter(opts.SignupRateLimit, opts.SignupRateWindow),
	}
	s.handler = s.withMiddleware(s.routes())
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /signup", s.rateLimited(s.handleSignup))
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /protected", s.requireSession(s.handleProtected))
	mux.HandleFunc("GET /api/user/email", s.requireSession(s.handleUserEmail))

	mux.HandleFunc("POST /api/tasks", s.requireSession(s.handleCreateTask))
	mux.HandleFunc("GET /api/tasks", s.requireSession(s.handleListTasks))
	mux.HandleFunc("PATCH /api/tasks/{id}", s.taskMutation(s.handleSetCompleted))
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskMutation(s.handleUpdateTask))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskMutation(s.handleDeleteTask))

	return mux
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
