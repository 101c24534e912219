// Package users stores user accounts. Email uniqueness is enforced by the
// store itself, so two concurrent Create calls for one email cannot both
// succeed.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
)

type Repository interface {
	// Create persists user, assigning an ID when empty. It returns
	// common.ErrorAlreadyExists when the email is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
