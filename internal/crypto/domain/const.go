// Package domain defines the core types, constants, and errors for the
// envelope encryption subsystem: the key ring, the envelope wire format,
// and the supported cipher algorithms.
package domain

// Algorithm identifies the AEAD cipher used to seal an envelope payload.
//
// Exactly one algorithm is supported at a time. The algorithm name is
// recorded inside every envelope so future revisions can introduce new
// ciphers without breaking previously persisted data.
type Algorithm string

const (
	// AES256GCM is AES-256 in Galois/Counter Mode, the only algorithm
	// currently accepted by the envelope service.
	//
	// Properties:
	//   - 256-bit key
	//   - 12-byte nonce (96 bits, randomly generated per encryption)
	//   - 16-byte authentication tag appended to the ciphertext
	AES256GCM Algorithm = "AES-256-GCM"
)

const (
	// CurrentFormatVersion is the envelope format version written by this
	// build. Readers accept any version less than or equal to this value
	// and reject anything newer.
	CurrentFormatVersion uint32 = 1

	// KeySize is the required key length in bytes (AES-256).
	KeySize = 32

	// NonceSize is the AEAD nonce length in bytes.
	NonceSize = 12

	// TagSize is the AEAD authentication tag length in bytes.
	TagSize = 16

	// MinPayloadSize is the smallest structurally valid sealed payload:
	// a nonce and a tag with an empty ciphertext between them.
	MinPayloadSize = NonceSize + TagSize
)
