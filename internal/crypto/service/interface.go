// Package service implements the cryptographic services of the envelope
// encryption subsystem: the AES-256-GCM cipher primitive and the envelope
// service that turns plaintext secrets into versioned, self-describing
// packages.
package service

// AEAD is the authenticated-encryption primitive used to seal envelope
// payloads. Implementations are stateless and safe for concurrent use.
type AEAD interface {
	// Seal encrypts plaintext under the given 12-byte nonce and returns
	// ciphertext with the authentication tag appended.
	Seal(plaintext, nonce, aad []byte) ([]byte, error)

	// Open verifies the authentication tag and decrypts. The tag check
	// happens before any plaintext is released.
	Open(sealed, nonce, aad []byte) ([]byte, error)

	// SealPayload encrypts plaintext under a fresh random nonce and
	// returns the combined layout nonce ‖ ciphertext ‖ tag.
	SealPayload(plaintext, aad []byte) ([]byte, error)

	// OpenPayload splits a combined payload into nonce and sealed bytes
	// and decrypts it.
	OpenPayload(payload, aad []byte) ([]byte, error)
}

// EnvelopeEncryptor is the secret-encryption service boundary consumed by
// use cases and CLI commands. Both operations are pure functions of their
// inputs and the immutable key ring.
type EnvelopeEncryptor interface {
	// EncryptSecret seals a non-empty plaintext under the key identified
	// by keyID (the ring default when empty) and returns envelope bytes.
	EncryptSecret(plaintext []byte, keyID string) ([]byte, error)

	// DecryptSecret decodes envelope bytes and returns the original
	// plaintext, byte for byte.
	DecryptSecret(data []byte) ([]byte, error)
}
