// Package domain defines the core domain models for secret management.
// Secrets use an immutable versioning scheme: each update creates a new
// database row with an incremented version number, and the stored value
// is an opaque encrypted envelope produced by the crypto service.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Secret represents a stored secret version.
//
// The persistence layer never inspects Blob; it is the envelope bytes
// produced by the envelope service and is only ever decoded by it.
type Secret struct {
	// ID is the unique identifier for this specific secret version.
	ID uuid.UUID
	// Path is the logical key used to access the secret (e.g., "app/db-password").
	Path string
	// Version is the monotonically increasing version number for this path.
	Version uint
	// Blob contains the encrypted envelope bytes.
	Blob []byte
	// Plaintext holds the decrypted secret value in memory only; it is
	// never persisted and must be zeroed after use.
	Plaintext []byte `json:"-"`
	// CreatedAt is the UTC timestamp when this version was created.
	CreatedAt time.Time
	// DeletedAt marks when this secret was soft-deleted (nil if active).
	DeletedAt *time.Time
}
