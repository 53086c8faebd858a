// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is never serialized; profile responses use PublicProfile.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicProfile is the client-facing view of a user.
type PublicProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile returns the public view of the user.
func (u *User) Profile() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Identity is the authenticated caller attached to a request context
// by the auth middleware. It carries only what the token proves.
type Identity struct {
	UserID string
}
