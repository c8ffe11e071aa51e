package commands

import (
	"encoding/base64"
	"fmt"

	"github.com/allisson/sealbox/internal/app"
	"github.com/allisson/sealbox/internal/config"
	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
)

// RunDecrypt decrypts a base64-encoded envelope produced by the encrypt
// command or the API and prints the plaintext as base64. The envelope
// records which key sealed it, so no key id is needed.
func RunDecrypt(value string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	envelope, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return fmt.Errorf("failed to decode value: value must be base64-encoded: %w", err)
	}

	encryptor, err := container.EnvelopeService()
	if err != nil {
		return fmt.Errorf("failed to initialize envelope service: %w", err)
	}

	plaintext, err := encryptor.DecryptSecret(envelope)
	if err != nil {
		return fmt.Errorf("failed to decrypt value: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	fmt.Println(base64.StdEncoding.EncodeToString(plaintext))
	return nil
}
