package ports

import (
	"context"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// UserRepository defines persistence for registered accounts.
// Lookups return the stored password hash; services are responsible for
// stripping it before anything leaves the credential layer.
type UserRepository interface {
	// Create persists a new user. The email must already be normalized to
	// lower case; a duplicate yields domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdatePassword overwrites the stored hash for the given user.
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
