package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/sealbox/internal/database"
	apperrors "github.com/allisson/sealbox/internal/errors"
	"github.com/allisson/sealbox/internal/user/domain"
)

// PostgreSQLTokenRepository handles session token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository creates a new PostgreSQLTokenRepository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts a new session token.
func (r *PostgreSQLTokenRepository) Create(ctx context.Context, token *domain.Token) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tokens (id, token_hash, user_id, expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create token")
	}
	return nil
}

// GetByHash retrieves a session token by its hash.
func (r *PostgreSQLTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.Token, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, token_hash, user_id, expires_at, created_at
			  FROM tokens WHERE token_hash = $1`

	var token domain.Token
	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID, &token.TokenHash, &token.UserID, &token.ExpiresAt, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		return nil, apperrors.Wrap(err, "failed to get token by hash")
	}

	return &token, nil
}

// DeleteExpired removes tokens that expired before the given time.
// Returns the number of deleted rows.
func (r *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at < $1`, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired tokens")
	}

	return result.RowsAffected()
}
