package service

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testKeyRing(t *testing.T, ids ...string) *cryptoDomain.KeyRing {
	t.Helper()

	keys := make(map[string]string, len(ids))
	for _, id := range ids {
		key := make([]byte, cryptoDomain.KeySize)
		_, err := rand.Read(key)
		require.NoError(t, err)
		keys[id] = hex.EncodeToString(key)
	}

	keyring, err := cryptoDomain.NewKeyRing(keys, "")
	require.NoError(t, err)
	return keyring
}

func TestEnvelopeService_EncryptSecret(t *testing.T) {
	keyring := testKeyRing(t, "app", "legacy")
	service := NewEnvelopeService(keyring, testLogger())

	t.Run("encrypt with default key", func(t *testing.T) {
		data, err := service.EncryptSecret([]byte("my secret"), "")
		assert.NoError(t, err)
		assert.NotNil(t, data)

		envelope, err := cryptoDomain.UnmarshalEnvelope(data)
		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.AES256GCM, envelope.Algorithm)
		assert.Equal(t, cryptoDomain.CurrentFormatVersion, envelope.FormatVersion)
		assert.Equal(t, "app", envelope.KeyID)
	})

	t.Run("encrypt with explicit key", func(t *testing.T) {
		data, err := service.EncryptSecret([]byte("my secret"), "legacy")
		assert.NoError(t, err)

		envelope, err := cryptoDomain.UnmarshalEnvelope(data)
		require.NoError(t, err)
		assert.Equal(t, "legacy", envelope.KeyID)
	})

	t.Run("unknown key id fails", func(t *testing.T) {
		data, err := service.EncryptSecret([]byte("my secret"), "missing")
		assert.Error(t, err)
		assert.Nil(t, data)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("empty plaintext fails before any crypto work", func(t *testing.T) {
		data, err := service.EncryptSecret(nil, "")
		assert.Error(t, err)
		assert.Nil(t, data)
		assert.ErrorIs(t, err, cryptoDomain.ErrEmptyPlaintext)
	})

	t.Run("same plaintext produces different envelopes", func(t *testing.T) {
		data1, err := service.EncryptSecret([]byte("my secret"), "")
		require.NoError(t, err)

		data2, err := service.EncryptSecret([]byte("my secret"), "")
		require.NoError(t, err)

		assert.NotEqual(t, data1, data2)
	})

	t.Run("envelope never contains the plaintext", func(t *testing.T) {
		plaintext := []byte("super-secret-database-password")

		data, err := service.EncryptSecret(plaintext, "")
		require.NoError(t, err)

		assert.False(t, bytes.Contains(data, plaintext))
	})
}

func TestEnvelopeService_DecryptSecret(t *testing.T) {
	keyring := testKeyRing(t, "app", "legacy")
	service := NewEnvelopeService(keyring, testLogger())

	t.Run("round trip", func(t *testing.T) {
		plaintext := []byte("hello")

		data, err := service.EncryptSecret(plaintext, "")
		require.NoError(t, err)

		decrypted, err := service.DecryptSecret(data)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, decrypted))
	})

	t.Run("round trip with binary plaintext", func(t *testing.T) {
		plaintext := make([]byte, 4096)
		_, err := rand.Read(plaintext)
		require.NoError(t, err)

		data, err := service.EncryptSecret(plaintext, "legacy")
		require.NoError(t, err)

		decrypted, err := service.DecryptSecret(data)
		assert.NoError(t, err)
		assert.True(t, bytes.Equal(plaintext, decrypted))
	})

	t.Run("envelope encrypted under a key not in the ring fails", func(t *testing.T) {
		otherRing := testKeyRing(t, "other")
		otherService := NewEnvelopeService(otherRing, testLogger())

		data, err := otherService.EncryptSecret([]byte("secret"), "")
		require.NoError(t, err)

		decrypted, err := service.DecryptSecret(data)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyNotFound)
	})

	t.Run("same key id with different material fails authentication", func(t *testing.T) {
		otherRing := testKeyRing(t, "app")
		otherService := NewEnvelopeService(otherRing, testLogger())

		data, err := otherService.EncryptSecret([]byte("secret"), "app")
		require.NoError(t, err)

		decrypted, err := service.DecryptSecret(data)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("single flipped payload bit fails authentication", func(t *testing.T) {
		data, err := service.EncryptSecret([]byte("hello"), "")
		require.NoError(t, err)

		envelope, err := cryptoDomain.UnmarshalEnvelope(data)
		require.NoError(t, err)

		// Flip one bit in the ciphertext portion of the sealed payload
		envelope.Payload[cryptoDomain.NonceSize] ^= 0x01
		tampered, err := envelope.Marshal()
		require.NoError(t, err)

		decrypted, err := service.DecryptSecret(tampered)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("unsupported algorithm is rejected before key lookup", func(t *testing.T) {
		data, err := service.EncryptSecret([]byte("hello"), "")
		require.NoError(t, err)

		envelope, err := cryptoDomain.UnmarshalEnvelope(data)
		require.NoError(t, err)

		envelope.Algorithm = "ChaCha20-Poly1305"
		modified, err := envelope.Marshal()
		require.NoError(t, err)

		decrypted, err := service.DecryptSecret(modified)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
		assert.Contains(t, err.Error(), "ChaCha20-Poly1305")
	})

	t.Run("format version newer than current is rejected", func(t *testing.T) {
		data, err := service.EncryptSecret([]byte("hello"), "")
		require.NoError(t, err)

		envelope, err := cryptoDomain.UnmarshalEnvelope(data)
		require.NoError(t, err)

		envelope.FormatVersion = cryptoDomain.CurrentFormatVersion + 1
		modified, err := envelope.Marshal()
		require.NoError(t, err)

		decrypted, err := service.DecryptSecret(modified)
		assert.Error(t, err)
		assert.Nil(t, decrypted)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedVersion)
	})

	t.Run("malformed envelope bytes fail", func(t *testing.T) {
		decrypted, err := service.DecryptSecret([]byte{0x01, 0x02, 0x03})
		assert.Error(t, err)
		assert.Nil(t, decrypted)
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedEnvelope)
	})
}

func TestEnvelopeService_KnownKeyRoundTrip(t *testing.T) {
	// Fixed all-zero key: the envelope bytes differ between runs because
	// of the random nonce, but every run must decrypt back to "hello".
	keyring, err := cryptoDomain.NewKeyRing(map[string]string{
		"zero": "0000000000000000000000000000000000000000000000000000000000000000",
	}, "zero")
	require.NoError(t, err)

	service := NewEnvelopeService(keyring, testLogger())

	data, err := service.EncryptSecret([]byte("hello"), "zero")
	require.NoError(t, err)

	envelope, err := cryptoDomain.UnmarshalEnvelope(data)
	require.NoError(t, err)
	assert.Equal(t, cryptoDomain.AES256GCM, envelope.Algorithm)
	assert.Equal(t, "zero", envelope.KeyID)
	assert.Len(t, envelope.Payload, cryptoDomain.NonceSize+len("hello")+cryptoDomain.TagSize)

	decrypted, err := service.DecryptSecret(data)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decrypted)
}
