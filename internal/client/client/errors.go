package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return e.Message
}

// Unwrap exposes the error kind behind the status code.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return common.ErrorValidation
	case e.StatusCode == http.StatusUnauthorized:
		return common.ErrorUnauthenticated
	case e.StatusCode == http.StatusForbidden:
		return common.ErrInvalidToken
	case e.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return common.ErrorRateLimited
	case e.StatusCode >= 500:
		return common.ErrorInternal
	default:
		return nil
	}
}
