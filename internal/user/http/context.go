// Package http provides HTTP handlers and middleware for user registration,
// login, and session-token authentication.
package http

import (
	"context"

	"github.com/allisson/sealbox/internal/user/domain"
)

// userKey is a context key type for storing authenticated users.
type userKey struct{}

// WithUser stores an authenticated user in the context.
// Called by the authentication middleware after successful token validation.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves an authenticated user from the context.
// Returns (user, true) if present, or (nil, false) if no user was set.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*domain.User)
	return user, ok
}
