// Package service provides authentication-related services: secure random
// session-token generation and hashing.
package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	apperrors "github.com/allisson/sealbox/internal/errors"
)

// TokenService generates and hashes opaque session tokens.
type TokenService interface {
	// GenerateToken creates a new random token, returning the plain form
	// (handed to the client once) and its hash (persisted).
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token for storage or lookup.
	HashToken(plainToken string) string
}

// tokenService implements TokenService using SHA-256 for token hashing.
type tokenService struct{}

// NewTokenService creates a new TokenService instance.
func NewTokenService() TokenService {
	return &tokenService{}
}

// GenerateToken creates a cryptographically secure 32-byte random token.
// The token is base64 URL-encoded for easy transmission and storage.
func (t *tokenService) GenerateToken() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.URLEncoding.EncodeToString(randomBytes)
	return plainToken, t.HashToken(plainToken), nil
}

// HashToken hashes a plain text token using SHA-256.
// Returns the hash as a hexadecimal string. SHA-256 is sufficient here
// because the token is a full-entropy random value, not a password.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}
