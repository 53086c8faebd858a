// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/eventdeck/eventdeck/internal/model"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
// It never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a public profile to its response form.
func ToUserResponse(p model.PublicProfile) UserResponse {
	return UserResponse{
		ID:        p.ID,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}
