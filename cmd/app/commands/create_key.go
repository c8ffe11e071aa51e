package commands

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
)

// RunCreateKey generates a cryptographically secure 32-byte encryption key
// and writes it as an ENCRYPTION_KEYS entry ready for the environment.
// Key material is zeroed from memory after encoding.
//
// If keyID is empty, a default ID in format "key-YYYY-MM-DD" is generated.
func RunCreateKey(out io.Writer, keyID string) error {
	if keyID == "" {
		keyID = fmt.Sprintf("key-%s", time.Now().Format("2006-01-02"))
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}

	encodedKey := hex.EncodeToString(key)
	cryptoDomain.Zero(key)

	fmt.Fprintln(out, "# Encryption Key Configuration")
	fmt.Fprintln(out, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "ENCRYPTION_KEYS=\"%s:%s\"\n", keyID, encodedKey)
	fmt.Fprintf(out, "DEFAULT_KEY_ID=\"%s\"\n", keyID)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "# To add more keys, append them as comma-separated id:hex pairs:")
	fmt.Fprintf(out, "# ENCRYPTION_KEYS=\"%s:%s,other-key:hex-encoded-32-byte-key\"\n", keyID, encodedKey)

	return nil
}
