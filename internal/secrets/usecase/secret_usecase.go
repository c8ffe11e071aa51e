package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	cryptoService "github.com/allisson/sealbox/internal/crypto/service"
	"github.com/allisson/sealbox/internal/database"
	apperrors "github.com/allisson/sealbox/internal/errors"
	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
)

// secretUseCase implements the SecretUseCase interface for managing secrets.
type secretUseCase struct {
	txManager  database.TxManager
	secretRepo SecretRepository
	encryptor  cryptoService.EnvelopeEncryptor
}

// NewSecretUseCase creates a new secret use case instance with the provided dependencies.
func NewSecretUseCase(
	txManager database.TxManager,
	secretRepo SecretRepository,
	encryptor cryptoService.EnvelopeEncryptor,
) SecretUseCase {
	return &secretUseCase{
		txManager:  txManager,
		secretRepo: secretRepo,
		encryptor:  encryptor,
	}
}

// CreateOrUpdate creates a new secret or a new version of an existing secret.
//
// The value is encrypted under the key ring's default key; the stored blob
// is the opaque envelope bytes. Version assignment and the insert run in a
// single transaction so concurrent writers cannot produce duplicate versions.
func (s *secretUseCase) CreateOrUpdate(
	ctx context.Context,
	path string,
	value []byte,
) (*secretsDomain.Secret, error) {
	blob, err := s.encryptor.EncryptSecret(value, "")
	if err != nil {
		return nil, err
	}

	var newSecret *secretsDomain.Secret
	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var version uint = 1

		existing, err := s.secretRepo.GetByPath(txCtx, path)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if existing != nil {
			version = existing.Version + 1
		}

		newSecret = &secretsDomain.Secret{
			ID:        uuid.Must(uuid.NewV7()),
			Path:      path,
			Version:   version,
			Blob:      blob,
			CreatedAt: time.Now().UTC(),
		}

		return s.secretRepo.Create(txCtx, newSecret)
	})
	if err != nil {
		return nil, err
	}

	return newSecret, nil
}

// Get retrieves and decrypts the latest version of a secret by its path.
func (s *secretUseCase) Get(ctx context.Context, path string) (*secretsDomain.Secret, error) {
	secret, err := s.secretRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, s.notFoundAsSecret(err)
	}

	return s.decryptSecret(secret)
}

// GetByVersion retrieves and decrypts a specific version of a secret.
func (s *secretUseCase) GetByVersion(
	ctx context.Context,
	path string,
	version uint,
) (*secretsDomain.Secret, error) {
	secret, err := s.secretRepo.GetByPathAndVersion(ctx, path, version)
	if err != nil {
		return nil, s.notFoundAsSecret(err)
	}

	return s.decryptSecret(secret)
}

// Delete performs a soft delete on a secret by its path.
func (s *secretUseCase) Delete(ctx context.Context, path string) error {
	secret, err := s.secretRepo.GetByPath(ctx, path)
	if err != nil {
		return s.notFoundAsSecret(err)
	}

	return s.secretRepo.Delete(ctx, secret.ID)
}

// List retrieves secrets without their values, ordered by path with pagination.
func (s *secretUseCase) List(ctx context.Context, offset, limit int) ([]*secretsDomain.Secret, error) {
	return s.secretRepo.List(ctx, offset, limit)
}

// decryptSecret decrypts a secret's blob and populates the Plaintext field.
// All decryption error kinds (malformed envelope, unsupported algorithm or
// version, missing key, failed authentication) propagate unchanged.
func (s *secretUseCase) decryptSecret(secret *secretsDomain.Secret) (*secretsDomain.Secret, error) {
	plaintext, err := s.encryptor.DecryptSecret(secret.Blob)
	if err != nil {
		return nil, err
	}

	secret.Plaintext = plaintext
	return secret, nil
}

// notFoundAsSecret translates the repository's generic not-found error into
// the secret-specific variant.
func (s *secretUseCase) notFoundAsSecret(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return secretsDomain.ErrSecretNotFound
	}
	return err
}
