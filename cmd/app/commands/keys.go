package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/allisson/sealbox/internal/app"
	"github.com/allisson/sealbox/internal/config"
)

// RunListKeys prints the configured encryption key identifiers and the
// default key. Only key ids are shown, never key material.
// Supports both text and JSON output formats.
func RunListKeys(format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	keyRing, err := container.KeyRing()
	if err != nil {
		return fmt.Errorf("failed to initialize key ring: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"default_key_id": keyRing.DefaultKeyID(),
			"key_ids":        keyRing.KeyIDs(),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	fmt.Printf("Default key: %s\n", keyRing.DefaultKeyID())
	fmt.Println("Configured keys:")
	for _, keyID := range keyRing.KeyIDs() {
		fmt.Printf("  - %s\n", keyID)
	}

	return nil
}
