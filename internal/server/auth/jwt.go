// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the lifetime of a session token.
const DefaultTokenValidity = 24 * time.Hour

// Claims содержит стандартные утверждения и UserID владельца сессии.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenIssuer signs and verifies HS256 session tokens with a fixed secret.
// It holds no mutable state and is safe for concurrent use.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenIssuer returns an issuer using secret and validity. A non-positive
// validity falls back to DefaultTokenValidity.
func NewTokenIssuer(secret []byte, validity time.Duration) *TokenIssuer {
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenIssuer{secret: secret, validity: validity, now: time.Now}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	c := *i
	c.now = now
	return &c
}

// Validity is the lifetime given to freshly issued tokens.
func (i *TokenIssuer) Validity() time.Duration {
	return i.validity
}

// Issue mints a token for userID that expires Validity() from now.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID: userID,
	})

	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", common.ErrorInternal, err)
	}
	return s, nil
}

// Verify returns the user id embedded in tokenString.
//
// An empty string yields common.ErrorUnauthenticated. A bad signature,
// malformed token, missing user id or expiry in the past yields an error
// matching common.ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", common.ErrorUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
