package domain

import (
	"github.com/allisson/sealbox/internal/errors"
)

// Envelope encryption error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so handlers can map them to HTTP status codes with errors.Is checks.
var (
	// ErrKeyNotFound indicates the requested key id is not present in the
	// key ring. Callers append the requested id (never key material) when
	// returning it.
	//
	// HTTP Status: 404 Not Found
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "encryption key not found")

	// ErrNoKeysConfigured indicates the key ring was constructed with an
	// empty key set. This is fatal at startup: the process must not serve
	// traffic without at least one data-encryption key.
	ErrNoKeysConfigured = errors.New("no encryption keys configured")

	// ErrInvalidKeySize indicates a key is not exactly 32 bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidNonceSize indicates a nonce is not exactly 12 bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidNonceSize = errors.Wrap(errors.ErrInvalidInput, "invalid nonce size")

	// ErrEmptyPlaintext indicates the caller supplied an empty plaintext.
	// The check runs before any cryptographic work.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext cannot be empty")

	// ErrMalformedEnvelope indicates the envelope bytes are structurally
	// invalid: truncated input, a bad field layout, trailing garbage, or a
	// sealed payload shorter than nonce+tag.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")

	// ErrUnsupportedAlgorithm indicates the envelope names a cipher this
	// build does not implement. The algorithm name is included when the
	// error is returned to aid diagnosis.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedVersion indicates the envelope format version is newer
	// than this build understands. Older versions always remain readable.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnsupportedVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported envelope version")

	// ErrDecryptionFailed indicates authentication-tag verification failed.
	//
	// Wrong key, tampering, and corruption are indistinguishable by design
	// in AEAD; no further detail is ever attached to this error.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrEncryptionFailed indicates an unexpected failure while sealing a
	// plaintext (e.g., the random source failed). It never carries the
	// plaintext and maps to an internal server error.
	ErrEncryptionFailed = errors.New("encryption failed")
)
