package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/sealbox/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/sealbox/internal/crypto/http"
	cryptoService "github.com/allisson/sealbox/internal/crypto/service"
)

// KeyRing returns the encryption key ring loaded from environment variables.
// Misconfigured keys (bad hex, wrong size, missing default) fail here so the
// process refuses to start instead of failing on the first request.
func (c *Container) KeyRing() (*cryptoDomain.KeyRing, error) {
	var err error
	c.keyRingInit.Do(func() {
		c.keyRing, err = c.initKeyRing()
		if err != nil {
			c.initErrors["keyRing"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyRing"]; exists {
		return nil, storedErr
	}
	return c.keyRing, nil
}

// EnvelopeService returns the envelope encryption service.
func (c *Container) EnvelopeService() (cryptoService.EnvelopeEncryptor, error) {
	var err error
	c.envelopeServiceInit.Do(func() {
		c.envelopeService, err = c.initEnvelopeService()
		if err != nil {
			c.initErrors["envelopeService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["envelopeService"]; exists {
		return nil, storedErr
	}
	return c.envelopeService, nil
}

// KeyHandler returns the HTTP handler for encryption key diagnostics.
func (c *Container) KeyHandler() (*cryptoHTTP.KeyHandler, error) {
	var err error
	c.keyHandlerInit.Do(func() {
		c.keyHandler, err = c.initKeyHandler()
		if err != nil {
			c.initErrors["keyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyHandler"]; exists {
		return nil, storedErr
	}
	return c.keyHandler, nil
}

// initKeyRing builds the key ring from the ENCRYPTION_KEYS configuration.
func (c *Container) initKeyRing() (*cryptoDomain.KeyRing, error) {
	keys, err := cryptoDomain.ParseKeySet(c.config.EncryptionKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to parse encryption keys: %w", err)
	}

	keyRing, err := cryptoDomain.NewKeyRing(keys, c.config.DefaultKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create key ring: %w", err)
	}

	return keyRing, nil
}

// initEnvelopeService creates the envelope encryption service.
func (c *Container) initEnvelopeService() (cryptoService.EnvelopeEncryptor, error) {
	keyRing, err := c.KeyRing()
	if err != nil {
		return nil, fmt.Errorf("failed to get key ring for envelope service: %w", err)
	}

	return cryptoService.NewEnvelopeService(keyRing, c.Logger()), nil
}

// initKeyHandler creates the key diagnostics HTTP handler.
func (c *Container) initKeyHandler() (*cryptoHTTP.KeyHandler, error) {
	keyRing, err := c.KeyRing()
	if err != nil {
		return nil, fmt.Errorf("failed to get key ring for key handler: %w", err)
	}

	return cryptoHTTP.NewKeyHandler(keyRing, c.Logger()), nil
}
