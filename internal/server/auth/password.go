package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor.
const PasswordCost = 10

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// HashPassword returns a salted bcrypt digest of plaintext. Each call uses a
// fresh random salt, so hashing the same password twice gives different
// digests.
func HashPassword(plaintext string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, MaxPasswordLength)
		}
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}
	return hash, nil
}

// CheckPassword reports whether plaintext matches hash. A mismatch is
// (false, nil); a corrupt hash is an error and never a match.
func CheckPassword(hash []byte, plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: compare password: %w", common.ErrorInternal, err)
	}
}
