// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse represents the API response for a user. It excludes the
// password hash and other internal fields.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse represents the API response for a successful login.
// The token is only ever returned here; the server persists a hash of it.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
