package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ratemystore/rating-system/internal/core/domain"
)

// HashPassword derives a salted bcrypt digest from the plaintext. Each call
// salts independently, so hashing the same plaintext twice yields different
// digests.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", domain.ErrMissingField
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
// A malformed digest counts as a mismatch, never an error to the caller.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
