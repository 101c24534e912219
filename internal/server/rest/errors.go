package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// Client-facing messages.
const (
	msgServerError    = "Server error"
	msgUserExists     = "User already exists!"
	msgBadCredentials = "Invalid credentials"
	msgNoToken        = "Access denied, no token provided"
	msgBadToken       = "Invalid or expired token"
	msgRateLimited    = "Too many login attempts, please try again later."
	msgTaskNotFound   = "Task not found"
	msgUserNotFound   = "User not found"
)

// statusFor maps an error kind to an HTTP status and the message shown to
// the client. notFound is the message used for common.ErrorNotFound.
func statusFor(err error, notFound string) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, msgUserExists
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusBadRequest, msgBadCredentials
	case errors.Is(err, common.ErrorUnauthenticated):
		return http.StatusUnauthorized, msgNoToken
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusForbidden, msgBadToken
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, notFound
	case errors.Is(err, common.ErrorRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// validationMessage strips the sentinel prefix so "validation error: invalid
// email format" reaches the client as "invalid email format".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, common.ErrorValidation.Error()+": "); i >= 0 {
		return msg[i+len(common.ErrorValidation.Error())+2:]
	}
	return msg
}

// fail writes the error response for err. Internal failures are logged with
// their cause; the client only sees a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	status, msg := statusFor(err, notFound)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()), "error", err)
	}
	writeMessage(w, status, msg)
}
