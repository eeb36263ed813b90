package ports

import (
	"context"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// AuthService implements registration, login and password rotation.
type AuthService interface {
	// Register creates an account and returns it (hash stripped) together
	// with a freshly issued token.
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// UpdatePassword rotates the password after verifying the current one.
	// Outstanding tokens remain valid until their natural expiry.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
