package domain

import "errors"

var (
	// Validation failures, detected before any mutation.
	ErrInvalidRole   = errors.New("invalid role selected")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrMissingField  = errors.New("missing required field")

	// ErrEmailTaken signals a case-insensitive duplicate registration email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// that login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrForbidden = errors.New("access forbidden")

	ErrUserNotFound   = errors.New("user not found")
	ErrStoreNotFound  = errors.New("store not found")
	ErrRatingNotFound = errors.New("rating not found")
)
