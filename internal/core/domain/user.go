package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleStoreOwner = "store_owner"
	RoleUser       = "user"
)

// ValidRole reports whether role is one of the registerable roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStoreOwner, RoleUser:
		return true
	}
	return false
}

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy safe to hand outside the credential layer.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
