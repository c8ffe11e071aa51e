package domain

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/sealbox/internal/errors"
)

func randomHexKey(t *testing.T) string {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return hex.EncodeToString(key)
}

func TestNewKeyRing(t *testing.T) {
	t.Run("valid single key", func(t *testing.T) {
		keyring, err := NewKeyRing(map[string]string{"app": randomHexKey(t)}, "app")
		assert.NoError(t, err)
		assert.NotNil(t, keyring)
		assert.Equal(t, "app", keyring.DefaultKeyID())
	})

	t.Run("empty key set fails", func(t *testing.T) {
		keyring, err := NewKeyRing(map[string]string{}, "")
		assert.Error(t, err)
		assert.Nil(t, keyring)
		assert.ErrorIs(t, err, ErrNoKeysConfigured)
	})

	t.Run("invalid hex fails", func(t *testing.T) {
		keyring, err := NewKeyRing(map[string]string{"app": "not-hex"}, "app")
		assert.Error(t, err)
		assert.Nil(t, keyring)
	})

	t.Run("wrong decoded length fails", func(t *testing.T) {
		short := hex.EncodeToString(make([]byte, 16))
		keyring, err := NewKeyRing(map[string]string{"app": short}, "app")
		assert.Error(t, err)
		assert.Nil(t, keyring)
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	})

	t.Run("blank key id fails", func(t *testing.T) {
		keyring, err := NewKeyRing(map[string]string{"  ": randomHexKey(t)}, "")
		assert.Error(t, err)
		assert.Nil(t, keyring)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("unknown default key id fails", func(t *testing.T) {
		keyring, err := NewKeyRing(map[string]string{"app": randomHexKey(t)}, "missing")
		assert.Error(t, err)
		assert.Nil(t, keyring)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("empty default falls back to smallest key id", func(t *testing.T) {
		keyring, err := NewKeyRing(map[string]string{
			"charlie": randomHexKey(t),
			"alpha":   randomHexKey(t),
			"bravo":   randomHexKey(t),
		}, "")
		require.NoError(t, err)
		assert.Equal(t, "alpha", keyring.DefaultKeyID())
	})
}

func TestKeyRing_Lookup(t *testing.T) {
	hexKey := randomHexKey(t)
	keyring, err := NewKeyRing(map[string]string{"app": hexKey}, "app")
	require.NoError(t, err)

	t.Run("returns key material", func(t *testing.T) {
		key, err := keyring.Lookup("app")
		assert.NoError(t, err)
		assert.Equal(t, hexKey, hex.EncodeToString(key))
	})

	t.Run("unknown id carries the requested id, not material", func(t *testing.T) {
		key, err := keyring.Lookup("missing")
		assert.Error(t, err)
		assert.Nil(t, key)
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.Contains(t, err.Error(), "missing")
		assert.NotContains(t, err.Error(), hexKey)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		key, err := keyring.Lookup("app")
		require.NoError(t, err)

		Zero(key)

		again, err := keyring.Lookup("app")
		require.NoError(t, err)
		assert.Equal(t, hexKey, hex.EncodeToString(again))
	})
}

func TestKeyRing_KeyIDs(t *testing.T) {
	keyring, err := NewKeyRing(map[string]string{
		"bravo": randomHexKey(t),
		"alpha": randomHexKey(t),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "bravo"}, keyring.KeyIDs())
}

func TestParseKeySet(t *testing.T) {
	t.Run("single entry", func(t *testing.T) {
		keys, err := ParseKeySet("app:abcdef")
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"app": "abcdef"}, keys)
	})

	t.Run("multiple entries with whitespace", func(t *testing.T) {
		keys, err := ParseKeySet(" app:abcdef , legacy:123456 ")
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{"app": "abcdef", "legacy": "123456"}, keys)
	})

	t.Run("empty string yields empty set", func(t *testing.T) {
		keys, err := ParseKeySet("")
		assert.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("missing separator fails", func(t *testing.T) {
		keys, err := ParseKeySet("appabcdef")
		assert.Error(t, err)
		assert.Nil(t, keys)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("empty id fails", func(t *testing.T) {
		keys, err := ParseKeySet(":abcdef")
		assert.Error(t, err)
		assert.Nil(t, keys)
	})

	t.Run("empty key material fails", func(t *testing.T) {
		keys, err := ParseKeySet("app:")
		assert.Error(t, err)
		assert.Nil(t, keys)
	})

	t.Run("duplicate id fails", func(t *testing.T) {
		keys, err := ParseKeySet("app:abcdef,app:123456")
		assert.Error(t, err)
		assert.Nil(t, keys)
		assert.Contains(t, err.Error(), "duplicate")
	})
}
