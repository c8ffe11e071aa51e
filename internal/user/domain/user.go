// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/sealbox/internal/errors"
)

// User represents an account that can authenticate against the API.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string // Argon2id hash, never the plain password
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	// Wrong email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidToken indicates the session token is unknown, expired, or revoked.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")
)
