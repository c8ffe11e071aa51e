// Package http provides HTTP handlers for encryption key diagnostics.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/sealbox/internal/crypto/domain"
)

// KeyListResponse describes the configured encryption keys. Only key
// identifiers are exposed, never key material.
type KeyListResponse struct {
	DefaultKeyID string   `json:"default_key_id"`
	KeyIDs       []string `json:"key_ids"`
}

// KeyHandler handles HTTP requests for encryption key diagnostics.
type KeyHandler struct {
	keyring *domain.KeyRing
	logger  *slog.Logger
}

// NewKeyHandler creates a new KeyHandler.
func NewKeyHandler(keyring *domain.KeyRing, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		keyring: keyring,
		logger:  logger,
	}
}

// ListHandler lists the configured key identifiers and the default key.
// GET /v1/keys
func (h *KeyHandler) ListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, KeyListResponse{
		DefaultKeyID: h.keyring.DefaultKeyID(),
		KeyIDs:       h.keyring.KeyIDs(),
	})
}
