package ports

import "github.com/ratemystore/rating-system/internal/core/domain"

// TokenClaims is the identity carried inside a verified bearer token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenIssuer signs identity tokens with a fixed validity window.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier checks signature and expiry of a bearer token.
// Failures are domain.ErrTokenExpired or domain.ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// TokenService is the full token lifecycle used by the auth service.
type TokenService interface {
	TokenIssuer
	TokenVerifier
}
