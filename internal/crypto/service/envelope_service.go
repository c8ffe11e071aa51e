package service

import (
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
)

// EnvelopeService orchestrates the key ring, the AES-256-GCM cipher, and
// the envelope codec into the two public secret-encryption operations.
//
// The service holds no state between calls beyond the immutable key ring,
// so both operations are safe to invoke from any number of concurrent
// request handlers without synchronization.
type EnvelopeService struct {
	keyring *cryptoDomain.KeyRing
	logger  *slog.Logger
}

// NewEnvelopeService creates an EnvelopeService backed by the given key ring.
func NewEnvelopeService(keyring *cryptoDomain.KeyRing, logger *slog.Logger) *EnvelopeService {
	return &EnvelopeService{keyring: keyring, logger: logger}
}

// EncryptSecret seals plaintext into an envelope package.
//
// When keyID is empty the ring's default key is used. The plaintext must
// be non-empty; ErrEmptyPlaintext is returned before any cryptographic
// work. An unknown keyID propagates ErrKeyNotFound unchanged. Any
// unexpected failure while sealing or encoding is reported as
// ErrEncryptionFailed and never carries the plaintext.
func (s *EnvelopeService) EncryptSecret(plaintext []byte, keyID string) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, cryptoDomain.ErrEmptyPlaintext
	}

	if keyID == "" {
		keyID = s.keyring.DefaultKeyID()
	}

	key, err := s.keyring.Lookup(keyID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	aead, err := NewAESGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	payload, err := aead.SealPayload(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	envelope := cryptoDomain.Envelope{
		Algorithm:     cryptoDomain.AES256GCM,
		FormatVersion: cryptoDomain.CurrentFormatVersion,
		KeyID:         keyID,
		Payload:       payload,
	}

	data, err := envelope.Marshal()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	s.logger.Debug("secret encrypted",
		slog.String("key_id", keyID),
		slog.String("algorithm", string(cryptoDomain.AES256GCM)),
	)

	return data, nil
}

// DecryptSecret decodes an envelope package and returns the original
// plaintext, byte for byte.
//
// Failures keep their distinct kinds so callers can map them precisely:
// ErrMalformedEnvelope for structural problems, ErrUnsupportedAlgorithm
// and ErrUnsupportedVersion for the negotiation gates, ErrKeyNotFound for
// a missing key id, and ErrDecryptionFailed for a failed authentication
// check (with no further detail, by design).
func (s *EnvelopeService) DecryptSecret(data []byte) ([]byte, error) {
	envelope, err := cryptoDomain.UnmarshalEnvelope(data)
	if err != nil {
		return nil, err
	}

	if envelope.Algorithm != cryptoDomain.AES256GCM {
		return nil, fmt.Errorf("%w: %q", cryptoDomain.ErrUnsupportedAlgorithm, envelope.Algorithm)
	}

	if envelope.FormatVersion > cryptoDomain.CurrentFormatVersion {
		return nil, fmt.Errorf(
			"%w: envelope version %d, supported up to %d",
			cryptoDomain.ErrUnsupportedVersion, envelope.FormatVersion, cryptoDomain.CurrentFormatVersion,
		)
	}

	key, err := s.keyring.Lookup(envelope.KeyID)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	aead, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.OpenPayload(envelope.Payload, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("secret decrypted", slog.String("key_id", envelope.KeyID))

	return plaintext, nil
}
