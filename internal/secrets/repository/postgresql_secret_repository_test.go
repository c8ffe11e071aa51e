package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/sealbox/internal/errors"
	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func secretColumns() []string {
	return []string{"id", "path", "version", "blob", "created_at", "deleted_at"}
}

func TestPostgreSQLSecretRepository_Create(t *testing.T) {
	t.Run("Success_CreateSecret", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		secret := &secretsDomain.Secret{
			ID:        uuid.New(),
			Path:      "app/database-password",
			Version:   1,
			Blob:      []byte{0x01, 0x02, 0x03},
			CreatedAt: time.Now().UTC(),
		}

		mock.ExpectExec("INSERT INTO secrets").
			WithArgs(secret.ID, secret.Path, secret.Version, secret.Blob, secret.CreatedAt, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(context.Background(), secret)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DatabaseFailure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		secret := &secretsDomain.Secret{
			ID:        uuid.New(),
			Path:      "app/database-password",
			Version:   1,
			Blob:      []byte{0x01},
			CreatedAt: time.Now().UTC(),
		}

		mock.ExpectExec("INSERT INTO secrets").WillReturnError(assert.AnError)

		err := repo.Create(context.Background(), secret)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create secret")
	})
}

func TestPostgreSQLSecretRepository_GetByPath(t *testing.T) {
	t.Run("Success_GetLatestVersion", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		id := uuid.New()
		createdAt := time.Now().UTC()
		blob := []byte{0x0a, 0x0b, 0x0c}

		rows := sqlmock.NewRows(secretColumns()).
			AddRow(id, "app/database-password", 3, blob, createdAt, nil)

		mock.ExpectQuery("SELECT id, path, version, blob, created_at, deleted_at").
			WithArgs("app/database-password").
			WillReturnRows(rows)

		secret, err := repo.GetByPath(context.Background(), "app/database-password")
		require.NoError(t, err)
		assert.Equal(t, id, secret.ID)
		assert.Equal(t, "app/database-password", secret.Path)
		assert.Equal(t, uint(3), secret.Version)
		assert.Equal(t, blob, secret.Blob)
		assert.Nil(t, secret.DeletedAt)
	})

	t.Run("Error_SecretNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("SELECT id, path, version, blob, created_at, deleted_at").
			WithArgs("missing/path").
			WillReturnError(sql.ErrNoRows)

		secret, err := repo.GetByPath(context.Background(), "missing/path")
		assert.Nil(t, secret)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLSecretRepository_GetByPathAndVersion(t *testing.T) {
	t.Run("Success_GetSpecificVersion", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		id := uuid.New()
		createdAt := time.Now().UTC()

		rows := sqlmock.NewRows(secretColumns()).
			AddRow(id, "app/api-key", 2, []byte{0xff}, createdAt, nil)

		mock.ExpectQuery("SELECT id, path, version, blob, created_at, deleted_at").
			WithArgs("app/api-key", uint(2)).
			WillReturnRows(rows)

		secret, err := repo.GetByPathAndVersion(context.Background(), "app/api-key", 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), secret.Version)
	})

	t.Run("Error_VersionNotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("SELECT id, path, version, blob, created_at, deleted_at").
			WithArgs("app/api-key", uint(99)).
			WillReturnError(sql.ErrNoRows)

		secret, err := repo.GetByPathAndVersion(context.Background(), "app/api-key", 99)
		assert.Nil(t, secret)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLSecretRepository_List(t *testing.T) {
	t.Run("Success_ListSecrets", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		createdAt := time.Now().UTC()
		rows := sqlmock.NewRows(secretColumns()).
			AddRow(uuid.New(), "app/api-key", 1, []byte{0x01}, createdAt, nil).
			AddRow(uuid.New(), "app/database-password", 2, []byte{0x02}, createdAt, nil)

		mock.ExpectQuery("SELECT id, path, version, blob, created_at, deleted_at").
			WithArgs(0, 50).
			WillReturnRows(rows)

		secrets, err := repo.List(context.Background(), 0, 50)
		require.NoError(t, err)
		require.Len(t, secrets, 2)
		assert.Equal(t, "app/api-key", secrets[0].Path)
		assert.Equal(t, "app/database-password", secrets[1].Path)
	})

	t.Run("Success_EmptyResult", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("SELECT id, path, version, blob, created_at, deleted_at").
			WithArgs(0, 50).
			WillReturnRows(sqlmock.NewRows(secretColumns()))

		secrets, err := repo.List(context.Background(), 0, 50)
		assert.NoError(t, err)
		assert.Empty(t, secrets)
	})

	t.Run("Error_DatabaseFailure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("SELECT id, path, version, blob, created_at, deleted_at").
			WillReturnError(assert.AnError)

		secrets, err := repo.List(context.Background(), 0, 50)
		assert.Nil(t, secrets)
		assert.Contains(t, err.Error(), "failed to list secrets")
	})
}

func TestPostgreSQLSecretRepository_Delete(t *testing.T) {
	t.Run("Success_SoftDeleteSecret", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		secretID := uuid.New()

		mock.ExpectExec("UPDATE secrets").
			WithArgs(sqlmock.AnyArg(), secretID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), secretID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DatabaseFailure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectExec("UPDATE secrets").WillReturnError(assert.AnError)

		err := repo.Delete(context.Background(), uuid.New())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to delete secret")
	})
}
