package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a persisted session token. Only the SHA-256 hash of the plain
// token is stored; the plain form is returned to the client exactly once
// at login.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiration time.
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
