package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// AES-GCM provides authenticated encryption: confidentiality from AES and
// integrity/authenticity from GMAC. Tag verification is constant time and
// runs before any plaintext byte is released, so an attacker learns
// nothing about where a forgery failed.
//
// The cipher instance is stateless and safe for concurrent use from
// multiple goroutines. The caller contract is that a (key, nonce) pair is
// never reused; with random 96-bit nonces this is negligibly likely over
// the lifetime of one key, which bounds how long a single DEK may remain
// in use without external rotation.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher for the given key.
//
// The key must be exactly 32 bytes (256 bits); anything else returns
// ErrInvalidKeySize. Keys should come from a cryptographically secure
// random source.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", cryptoDomain.ErrInvalidKeySize, len(key), cryptoDomain.KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// GenerateNonce returns 12 random bytes from a cryptographically secure
// source. crypto/rand is safe for concurrent use.
func GenerateNonce() ([]byte, error) {
	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// Seal encrypts plaintext under the given nonce with optional additional
// authenticated data.
//
// The nonce must be exactly 12 bytes (ErrInvalidNonceSize otherwise) and
// must never be reused with the same key. The returned slice is the
// ciphertext (same length as the plaintext, no padding) with the 16-byte
// authentication tag appended.
func (a *AESGCMCipher) Seal(plaintext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", cryptoDomain.ErrInvalidNonceSize, len(nonce), cryptoDomain.NonceSize)
	}

	return a.aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open verifies the authentication tag and decrypts sealed bytes
// (ciphertext with tag appended) under the given nonce and AAD.
//
// On tag mismatch it returns ErrDecryptionFailed with no further detail:
// wrong key, tampering, and corruption are indistinguishable by design,
// and no partial plaintext ever escapes.
func (a *AESGCMCipher) Open(sealed, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", cryptoDomain.ErrInvalidNonceSize, len(nonce), cryptoDomain.NonceSize)
	}

	plaintext, err := a.aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// SealPayload encrypts plaintext under a fresh random nonce and returns
// the combined layout nonce(12) ‖ ciphertext(n) ‖ tag(16), the form the
// envelope codec stores as the sealed payload.
func (a *AESGCMCipher) SealPayload(plaintext, aad []byte) ([]byte, error) {
	nonce, err := GenerateNonce()
	if err != nil {
		return nil, err
	}

	sealed, err := a.Seal(plaintext, nonce, aad)
	if err != nil {
		return nil, err
	}

	return append(nonce, sealed...), nil
}

// OpenPayload decrypts a combined nonce ‖ ciphertext ‖ tag payload.
//
// Payloads shorter than nonce+tag are rejected as ErrMalformedEnvelope
// before any cryptographic work.
func (a *AESGCMCipher) OpenPayload(payload, aad []byte) ([]byte, error) {
	if len(payload) < cryptoDomain.MinPayloadSize {
		return nil, fmt.Errorf(
			"%w: sealed payload is %d bytes, minimum is %d",
			cryptoDomain.ErrMalformedEnvelope, len(payload), cryptoDomain.MinPayloadSize,
		)
	}

	nonce := payload[:cryptoDomain.NonceSize]
	sealed := payload[cryptoDomain.NonceSize:]
	return a.Open(sealed, nonce, aad)
}
