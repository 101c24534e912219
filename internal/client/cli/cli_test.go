package cli

import (
	"bytes"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtodo/internal/server/rest"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	url   string
	store client.SessionStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("GOPHTODO_SERVER", "")
	t.Setenv("GOPHTODO_SESSION_FILE", "")

	m := repomanager.NewInMemoryRepositoryManager()
	us := services.NewUserService(m, auth.NewTokenIssuer([]byte("k"), time.Hour))
	ts := services.NewTaskService(m)
	s, err := rest.NewServer("127.0.0.1:0", logging.Nop{}, us, ts, rest.Options{
		AllowedOrigin:        "http://localhost:3000",
		SignupRateLimit:      100,
		SignupRateWindow:     time.Minute,
		EnforceTaskOwnership: true,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return &harness{url: srv.URL, store: &client.MemorySessionStore{}}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	opts := &RootOptions{
		NewClient: func(cfg *config.Config) (client.Client, error) {
			return client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, h.store)
		},
	}
	cmd := newRootCommand(opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--server", h.url}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gophtodo", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, path := range [][]string{
		{"signup"}, {"login"}, {"logout"}, {"whoami"}, {"ping"},
		{"tasks", "list"}, {"tasks", "add"}, {"tasks", "edit"},
		{"tasks", "done"}, {"tasks", "undone"}, {"tasks", "rm"},
	} {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	server := cmd.PersistentFlags().Lookup("server")
	require.NotNil(t, server)
	assert.Equal(t, "a", server.Shorthand)

	cfg := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, cfg)
	assert.Equal(t, "c", cfg.Shorthand)

	require.NotNil(t, cmd.PersistentFlags().Lookup("session-file"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("timeout"))
}

func TestPing(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "ping")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

func TestSessionLifecycle(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "a@b.com\npw1\n", "signup")
	require.NoError(t, err)
	assert.Equal(t, "User created\n", out)

	_, err = h.run(t, "pw1\n", "signup", "--email", "a@b.com")
	require.Error(t, err, "duplicate signup")
	assert.Equal(t, "User already exists!", err.Error())
}

func TestTasksWorkflow(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "pw1\n", "signup", "-e", "a@b.com")
	require.NoError(t, err)

	_, err = h.run(t, "", "tasks", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gophtodo login")

	out, err := h.run(t, "pw1\n", "login", "-e", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as a@b.com\n", out)

	out, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com\n", out)

	out, err = h.run(t, "", "tasks", "list")
	require.NoError(t, err)
	assert.Equal(t, "No tasks.\n", out)

	out, err = h.run(t, "", "tasks", "add", "--due-date", "2025-01-01", "--due-time", "10:00", "-p", "high", "Buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Buy milk")

	s, err := h.store.Load()
	require.NoError(t, err)
	c, err := client.NewHTTPClient(h.url, time.Second, h.store)
	require.NoError(t, err)
	require.NotEmpty(t, s.Token)
	list, err := c.ListTasks(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID

	out, err = h.run(t, "", "tasks", "edit", id, "--description", "Buy oat milk")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy oat milk")

	_, err = h.run(t, "", "tasks", "edit", id)
	require.ErrorContains(t, err, "nothing to change")

	out, err = h.run(t, "", "tasks", "done", id)
	require.NoError(t, err)
	assert.Contains(t, out, "[x]")

	out, err = h.run(t, "", "tasks", "undone", id)
	require.NoError(t, err)
	assert.Contains(t, out, "[ ]")

	out, err = h.run(t, "", "tasks", "rm", id)
	require.NoError(t, err)
	assert.Equal(t, "Task deleted successfully\n", out)

	_, err = h.run(t, "", "tasks", "rm", id)
	require.ErrorIs(t, err, common.ErrorNotFound)

	out, err = h.run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out successfully\n", out)

	_, err = h.run(t, "", "whoami")
	require.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestTasksAdd_RequiresDueFields(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "", "tasks", "add", "Buy milk")
	require.Error(t, err)
}

func TestLogin_EmptyPassword(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "\n", "login", "-e", "a@b.com")
	require.ErrorContains(t, err, "password must not be empty")
}

func TestFileSessionStoreUsedByDefault(t *testing.T) {
	t.Setenv("GOPHTODO_SERVER", "")
	t.Setenv("GOPHTODO_SESSION_FILE", "")

	path := filepath.Join(t.TempDir(), "session.json")
	opts := &RootOptions{ServerURL: "http://127.0.0.1:1", SessionFile: path}
	require.NoError(t, opts.init())

	_, ok := opts.api.(*client.HTTPClient)
	assert.True(t, ok)
}

func TestInit_BadServerURL(t *testing.T) {
	t.Setenv("GOPHTODO_SERVER", "")
	opts := &RootOptions{ServerURL: "not a url"}
	require.Error(t, opts.init())
}
