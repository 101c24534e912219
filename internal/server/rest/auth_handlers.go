package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	s.logger.Info(r.Context(), "user created", "user_id", user.ID)
	writeMessage(w, http.StatusCreated, "User created")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{Success: false, Message: err.Error()})
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := statusFor(err, msgBadCredentials)
		if status == http.StatusInternalServerError {
			s.logger.Error(r.Context(), "login failed", "error", err,
				"request_id", RequestIDFromContext(r.Context()))
		}
		writeJSON(w, status, loginResponse{Success: false, Message: msg})
		return
	}

	http.SetCookie(w, s.sessionCookie(token, s.users.SessionValidity()))
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Message: "Logged in successfully"})
}

// handleLogout only clears the cookie; the token itself stays valid until it
// expires.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.sessionCookie("", -1))
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (s *Server) handleProtected(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Access granted")
}

func (s *Server) handleUserEmail(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	email, err := s.users.GetEmail(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err, msgUserNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}

// sessionCookie builds the session cookie. A negative validity produces the
// deletion cookie with the same attributes.
func (s *Server) sessionCookie(value string, validity time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Production,
		SameSite: http.SameSiteStrictMode,
	}
	if validity < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(validity.Seconds())
	c.Expires = time.Now().Add(validity)
	return c
}
