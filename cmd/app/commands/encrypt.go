package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/allisson/sealbox/internal/app"
	"github.com/allisson/sealbox/internal/config"
	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
)

// RunEncrypt encrypts a base64-encoded plaintext value under the configured
// key ring and prints the envelope as base64. When keyID is empty the ring
// default is used. No database access is required.
func RunEncrypt(value, keyID string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	plaintext, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return fmt.Errorf("failed to decode value: value must be base64-encoded: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	encryptor, err := container.EnvelopeService()
	if err != nil {
		return fmt.Errorf("failed to initialize envelope service: %w", err)
	}

	envelope, err := encryptor.EncryptSecret(plaintext, keyID)
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	fmt.Println(base64.StdEncoding.EncodeToString(envelope))
	return nil
}
