package domain

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/allisson/sealbox/internal/errors"
)

// KeyRing is the process-wide registry of data-encryption keys.
//
// It is built once at startup from configuration and never mutated
// afterwards, so it is safe to share across all concurrent callers
// without synchronization. Misconfiguration (bad hex, wrong key length,
// empty key set, unknown default id) fails construction immediately
// instead of surfacing lazily at first use.
type KeyRing struct {
	keys         map[string][]byte
	defaultKeyID string
}

// NewKeyRing builds a KeyRing from hex-encoded key material.
//
// Every value in keys must decode to exactly 32 bytes. defaultKeyID
// selects the key used when callers omit one; when empty, the smallest
// key id is chosen so the fallback is stable across restarts.
//
// Returns ErrNoKeysConfigured for an empty key set, ErrInvalidKeySize
// for a key of the wrong decoded length, and a wrapped error for
// malformed hex or an unknown default id.
func NewKeyRing(keys map[string]string, defaultKeyID string) (*KeyRing, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeysConfigured
	}

	decoded := make(map[string][]byte, len(keys))
	for id, hexKey := range keys {
		if strings.TrimSpace(id) == "" {
			return nil, errors.Wrap(errors.ErrInvalidInput, "key id cannot be empty")
		}

		key, err := hex.DecodeString(hexKey)
		if err != nil {
			return nil, fmt.Errorf("invalid hex key material for key id %q: %w", id, err)
		}
		if len(key) != KeySize {
			return nil, fmt.Errorf("%w: key id %q decodes to %d bytes, want %d", ErrInvalidKeySize, id, len(key), KeySize)
		}

		decoded[id] = key
	}

	if defaultKeyID == "" {
		defaultKeyID = smallestKeyID(decoded)
	} else if _, ok := decoded[defaultKeyID]; !ok {
		return nil, fmt.Errorf("%w: default key id %q", ErrKeyNotFound, defaultKeyID)
	}

	return &KeyRing{keys: decoded, defaultKeyID: defaultKeyID}, nil
}

// Lookup returns the raw key material for the given key id.
//
// The returned slice is a copy; callers may zero it after use without
// affecting the ring. Returns ErrKeyNotFound (carrying the requested id,
// never key material) when the id is absent.
func (kr *KeyRing) Lookup(keyID string) ([]byte, error) {
	key, ok := kr.keys[keyID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}

	out := make([]byte, len(key))
	copy(out, key)
	return out, nil
}

// DefaultKeyID returns the key id used when callers do not specify one.
func (kr *KeyRing) DefaultKeyID() string {
	return kr.defaultKeyID
}

// KeyIDs returns the sorted key ids in the ring, for diagnostics only.
// Key material is never exposed.
func (kr *KeyRing) KeyIDs() []string {
	ids := make([]string, 0, len(kr.keys))
	for id := range kr.keys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ParseKeySet parses the ENCRYPTION_KEYS configuration string.
//
// The expected format is comma-separated "id:hex-key" pairs, e.g.
// "app:94e3...,legacy:00ff...". Whitespace around entries is ignored.
// Hex decoding and key length are validated later by NewKeyRing; this
// function only checks the pair structure.
func ParseKeySet(s string) (map[string]string, error) {
	keys := make(map[string]string)

	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, hexKey, ok := strings.Cut(entry, ":")
		id = strings.TrimSpace(id)
		hexKey = strings.TrimSpace(hexKey)
		if !ok || id == "" || hexKey == "" {
			return nil, fmt.Errorf("%w: key entry %q, expected format 'id:hex-key'", errors.ErrInvalidInput, entry)
		}
		if _, dup := keys[id]; dup {
			return nil, fmt.Errorf("%w: duplicate key id %q", errors.ErrInvalidInput, id)
		}

		keys[id] = hexKey
	}

	return keys, nil
}

// smallestKeyID returns the lexicographically smallest key id.
func smallestKeyID(keys map[string][]byte) string {
	var smallest string
	for id := range keys {
		if smallest == "" || id < smallest {
			smallest = id
		}
	}
	return smallest
}
