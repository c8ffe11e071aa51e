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

// MySQLSecretRepository implements Secret persistence for MySQL databases.
type MySQLSecretRepository struct {
	db *sql.DB
}

// NewMySQLSecretRepository creates a new MySQL Secret repository instance.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}

// Create inserts a new secret version into the database.
func (m *MySQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secrets (id, path, version, blob, created_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID.String(),
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
func (m *MySQLSecretRepository) GetByPath(
	ctx context.Context,
	path string,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, path, version, blob, created_at, deleted_at
			  FROM secrets
			  WHERE path = ? AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	return scanSecret(querier.QueryRowContext(ctx, query, path), "failed to get secret by path")
}

// GetByPathAndVersion retrieves a specific version of a secret.
func (m *MySQLSecretRepository) GetByPathAndVersion(
	ctx context.Context,
	path string,
	version uint,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, path, version, blob, created_at, deleted_at
			  FROM secrets
			  WHERE path = ? AND version = ? AND deleted_at IS NULL
			  LIMIT 1`

	return scanSecret(
		querier.QueryRowContext(ctx, query, path, version),
		"failed to get secret by path and version",
	)
}

// List retrieves secrets ordered by path and version with pagination.
func (m *MySQLSecretRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, path, version, blob, created_at, deleted_at
			  FROM secrets
			  WHERE deleted_at IS NULL
			  ORDER BY path ASC, version DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
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
func (m *MySQLSecretRepository) Delete(ctx context.Context, secretID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secrets
			  SET deleted_at = ?
			  WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, time.Now().UTC(), secretID.String()); err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}
	return nil
}
