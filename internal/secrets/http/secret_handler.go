// Package http provides HTTP handlers for secret management operations.
// Secrets are encrypted at rest as opaque envelope blobs and can be versioned.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
	"github.com/allisson/sealbox/internal/httputil"
	secretsDomain "github.com/allisson/sealbox/internal/secrets/domain"
	"github.com/allisson/sealbox/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/sealbox/internal/secrets/usecase"
	customValidation "github.com/allisson/sealbox/internal/validation"
)

// SecretHandler handles HTTP requests for secret management operations.
type SecretHandler struct {
	secretUseCase secretsUseCase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler with required dependencies.
func NewSecretHandler(secretUseCase secretsUseCase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secretUseCase: secretUseCase,
		logger:        logger,
	}
}

// CreateOrUpdateHandler creates a new secret or a new version of an existing one.
// POST /v1/secrets/*path
// Returns 201 Created with secret metadata (never the plaintext value).
func (h *SecretHandler) CreateOrUpdateHandler(c *gin.Context) {
	path, ok := h.secretPath(c)
	if !ok {
		return
	}

	var req dto.CreateOrUpdateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	value, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 value: %w", err), h.logger)
		return
	}
	defer cryptoDomain.Zero(value)

	secret, err := h.secretUseCase.CreateOrUpdate(c.Request.Context(), path, value)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSecretToCreateResponse(secret))
}

// GetHandler retrieves and decrypts a secret by path, optionally by version.
// GET /v1/secrets/*path?version=N
// Returns 200 OK with the base64-encoded plaintext value.
func (h *SecretHandler) GetHandler(c *gin.Context) {
	path, ok := h.secretPath(c)
	if !ok {
		return
	}

	var secret *secretsDomain.Secret
	var err error

	versionStr := c.Query("version")
	if versionStr != "" {
		version, parseErr := strconv.ParseUint(versionStr, 10, 32)
		if parseErr != nil || version == 0 {
			httputil.HandleValidationErrorGin(
				c,
				fmt.Errorf("invalid version parameter: must be a positive integer"),
				h.logger,
			)
			return
		}
		secret, err = h.secretUseCase.GetByVersion(c.Request.Context(), path, uint(version))
	} else {
		secret, err = h.secretUseCase.Get(c.Request.Context(), path)
	}

	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Wipe plaintext once the response has been rendered.
	defer cryptoDomain.Zero(secret.Plaintext)

	c.JSON(http.StatusOK, dto.MapSecretToGetResponse(secret))
}

// DeleteHandler soft deletes a secret by its path.
// DELETE /v1/secrets/*path
// Returns 204 No Content.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	path, ok := h.secretPath(c)
	if !ok {
		return
	}

	if err := h.secretUseCase.Delete(c.Request.Context(), path); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ListHandler retrieves secrets with pagination support.
// GET /v1/secrets?offset=0&limit=50
// Returns 200 OK with secret metadata only (no values).
func (h *SecretHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secrets, err := h.secretUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretsToListResponse(secrets, offset, limit))
}

// secretPath extracts and validates the secret path URL parameter.
func (h *SecretHandler) secretPath(c *gin.Context) (string, bool) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("path cannot be empty"), h.logger)
		return "", false
	}
	return path, true
}
