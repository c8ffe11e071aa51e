// Package repository implements data persistence for secret management.
// Repositories support both PostgreSQL and MySQL with automatic versioning
// and soft deletion; the encrypted blob is stored as an opaque byte column.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/sealbox/internal/database"
	apperrors "github.com/allisson/sealbox/internal/errors"
	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
)

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL databases.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL Secret repository instance.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}

// Create inserts a new secret version into the database.
func (p *PostgreSQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secrets (id, path, version, blob, created_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID,
		secret.Path,
		secret.Version,
		secret.Blob,
		secret.CreatedAt,
		secret.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create secret")
	}
	return nil
}

// GetByPath retrieves the latest non-deleted version of a secret by its path.
func (p *PostgreSQLSecretRepository) GetByPath(
	ctx context.Context,
	path string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, version, blob, created_at, deleted_at
			  FROM secrets
			  WHERE path = $1 AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	return scanSecret(querier.QueryRowContext(ctx, query, path), "failed to get secret by path")
}

// GetByPathAndVersion retrieves a specific version of a secret.
func (p *PostgreSQLSecretRepository) GetByPathAndVersion(
	ctx context.Context,
	path string,
	version uint,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, version, blob, created_at, deleted_at
			  FROM secrets
			  WHERE path = $1 AND version = $2 AND deleted_at IS NULL
			  LIMIT 1`

	return scanSecret(
		querier.QueryRowContext(ctx, query, path, version),
		"failed to get secret by path and version",
	)
}

// List retrieves secrets ordered by path and version with pagination.
// Blobs are included; plaintext never exists at this layer.
func (p *PostgreSQLSecretRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, version, blob, created_at, deleted_at
			  FROM secrets
			  WHERE deleted_at IS NULL
			  ORDER BY path ASC, version DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets")
	}
	defer rows.Close()

	var secrets []*secretsDomain.Secret
	for rows.Next() {
		var secret secretsDomain.Secret
		if err := rows.Scan(
			&secret.ID,
			&secret.Path,
			&secret.Version,
			&secret.Blob,
			&secret.CreatedAt,
			&secret.DeletedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secret")
		}
		secrets = append(secrets, &secret)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secrets")
	}

	return secrets, nil
}

// Delete performs a soft delete on a secret by setting the DeletedAt timestamp.
func (p *PostgreSQLSecretRepository) Delete(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets
			  SET deleted_at = $1
			  WHERE id = $2`

	if _, err := querier.ExecContext(ctx, query, time.Now().UTC(), secretID); err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}
	return nil
}

// scanSecret scans a single secret row, translating sql.ErrNoRows to ErrNotFound.
func scanSecret(row *sql.Row, wrapMsg string) (*secretsDomain.Secret, error) {
	var secret secretsDomain.Secret
	err := row.Scan(
		&secret.ID,
		&secret.Path,
		&secret.Version,
		&secret.Blob,
		&secret.CreatedAt,
		&secret.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, wrapMsg)
	}
	return &secret, nil
}
