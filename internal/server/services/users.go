// Package services contains server-side business logic. This file implements
// UserService: signup, login and the session lookups used by the REST layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// ValidEmail reports whether email has the basic local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// UserService provides authentication-related operations:
// - Signup: validate, hash and store a new account
// - Login: check credentials and mint a session token
// - Authenticate: resolve a session token to a user id
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(m repomanager.RepositoryManager, tokens *auth.TokenIssuer) *UserService {
	return &UserService{repomanager: m, tokens: tokens}
}

// Signup creates an account for email. The email must match the basic
// pattern and be free; uniqueness is decided by the store, so of two
// concurrent signups for one email exactly one succeeds.
func (s *UserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if !ValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: error creating user: %w", common.ErrorInternal, err)
	}
	return user, nil
}

// Login checks the credentials and returns a fresh session token.
// Unknown emails and wrong passwords both yield ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt time as a real comparison
			_, _ = auth.CheckPassword(s.dummy(), password)
			return "", common.ErrorInvalidCredentials
		}
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	ok, err := auth.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrorInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// Authenticate resolves a session token to the user id it was issued for.
func (s *UserService) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}

// GetEmail returns the email of userID.
func (s *UserService) GetEmail(ctx context.Context, userID string) (string, error) {
	user, err := s.repomanager.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return user.Email, nil
}

// SessionValidity is how long tokens from Login stay valid.
func (s *UserService) SessionValidity() time.Duration {
	return s.tokens.Validity()
}

func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("gophtodo-timing-equaliser")
	})
	return s.dummyHash
}
