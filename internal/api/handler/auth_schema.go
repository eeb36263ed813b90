package handler

import "github.com/ratemystore/rating-system/internal/core/domain"

// Field limits mirror the registration form contract: names 2-60 chars,
// addresses up to 400, passwords 8-32 with an uppercase letter and a special
// character.

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=60"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=32,strongpw"`
	Address  string `json:"address"  validate:"max=400"`
	Role     string `json:"role"     validate:"required,oneof=admin store_owner user"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=32,strongpw"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
