package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/netx"
)

// HTTPClient implements Client over the server's JSON API. The session
// token is read from the store before each call and attached as the session
// cookie; Login saves it, Logout clears it.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   SessionStore
}

func NewHTTPClient(baseURL string, timeout time.Duration, store SessionStore) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
	}, nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type message struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/signup", credentials{Email: email, Password: password}, nil, false)
	return err
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, http.MethodPost, "/login", credentials{Email: email, Password: password}, nil, false)
	if err != nil {
		return err
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == common.SessionCookieName && cookie.Value != "" {
			return c.store.Save(Session{Server: c.baseURL, Token: cookie.Value})
		}
	}
	return fmt.Errorf("%w: login response carried no session cookie", common.ErrorInternal)
}

// Logout asks the server to clear the cookie and forgets the local session
// whatever the server says.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", nil, nil, false)
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

func (c *HTTPClient) Email(ctx context.Context) (string, error) {
	var out struct {
		Email string `json:"email"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/user/email", nil, &out, true); err != nil {
		return "", err
	}
	return out.Email, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	list := []models.Task{}
	if _, err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, task models.NewTask) (*models.Task, error) {
	var out models.Task
	if _, err := c.do(ctx, http.MethodPost, "/api/tasks", task, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var out models.Task
	if _, err := c.do(ctx, http.MethodPut, taskPath(id), patch, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error) {
	var out models.Task
	body := struct {
		Completed bool `json:"completed"`
	}{completed}
	if _, err := c.do(ctx, http.MethodPatch, taskPath(id), body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, true)
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, false)
	return err
}

func taskPath(id string) string {
	return "/api/tasks/" + url.PathEscape(id)
}

// do sends one request. With authed set the stored session is attached and
// a missing session fails fast with ErrNotLoggedIn. A non-2xx status is
// returned as *APIError; on success the body is decoded into out if non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, authed bool) (*http.Response, error) {
	req, err := netx.NewJSONRequest(ctx, method, c.baseURL+path, in)
	if err != nil {
		return nil, err
	}

	if authed {
		s, err := c.store.Load()
		if err != nil {
			return nil, err
		}
		if s.Server != "" && s.Server != c.baseURL {
			return nil, fmt.Errorf("%w: session belongs to %s", ErrNotLoggedIn, s.Server)
		}
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: s.Token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	body, err := netx.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var m message
		if json.Unmarshal(body, &m) == nil {
			apiErr.Message = m.Message
		}
		return nil, apiErr
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp, nil
}

// IsSessionError reports whether err means the user must log in again.
func IsSessionError(err error) bool {
	return errors.Is(err, ErrNotLoggedIn) ||
		errors.Is(err, common.ErrorUnauthenticated) ||
		errors.Is(err, common.ErrInvalidToken)
}
