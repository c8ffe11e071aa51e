package domain

import (
	"github.com/allisson/sealbox/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates no secret exists at the specified path.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")
)
