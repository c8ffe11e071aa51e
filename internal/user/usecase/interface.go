// Package usecase implements the user business logic: registration with
// Argon2id password hashing, login with opaque session tokens, and token
// authentication for the API middleware.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/sealbox/internal/user/domain"
)

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput contains the input data for user login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UseCase defines the user business logic operations.
type UseCase interface {
	// RegisterUser validates the input, hashes the password, and creates the user.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// Login verifies the credentials and issues a new session token,
	// returning its plain form and expiration time.
	Login(ctx context.Context, input LoginInput) (plainToken string, expiresAt time.Time, err error)

	// Authenticate resolves a plain session token to its user.
	// Unknown and expired tokens both return ErrInvalidToken.
	Authenticate(ctx context.Context, plainToken string) (*domain.User, error)
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenRepository defines session token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.Token, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
