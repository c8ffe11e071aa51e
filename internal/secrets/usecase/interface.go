// Package usecase implements business logic orchestration for secret management:
// it coordinates the envelope encryption service, the secret repository, and
// transaction management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
)

// SecretUseCase defines the secret management operations exposed to handlers
// and CLI commands.
type SecretUseCase interface {
	// CreateOrUpdate encrypts value and stores it at path, creating a new
	// version when the path already exists.
	CreateOrUpdate(ctx context.Context, path string, value []byte) (*secretsDomain.Secret, error)

	// Get retrieves and decrypts the latest version of a secret.
	Get(ctx context.Context, path string) (*secretsDomain.Secret, error)

	// GetByVersion retrieves and decrypts a specific version of a secret.
	GetByVersion(ctx context.Context, path string, version uint) (*secretsDomain.Secret, error)

	// Delete soft-deletes the latest version of a secret.
	Delete(ctx context.Context, path string) error

	// List retrieves secrets without plaintext, ordered by path, paginated.
	List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error)
}

// SecretRepository defines the persistence operations required by the use case.
// The stored blob is opaque to the repository.
type SecretRepository interface {
	Create(ctx context.Context, secret *secretsDomain.Secret) error
	GetByPath(ctx context.Context, path string) (*secretsDomain.Secret, error)
	GetByPathAndVersion(ctx context.Context, path string, version uint) (*secretsDomain.Secret, error)
	List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error)
	Delete(ctx context.Context, secretID uuid.UUID) error
}
