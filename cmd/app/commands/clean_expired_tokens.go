package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/allisson/sealbox/internal/app"
	"github.com/allisson/sealbox/internal/config"
)

// RunCleanExpiredTokens deletes session tokens that expired more than the
// specified number of days ago. Supports text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(ctx context.Context, days int, format string) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("cleaning expired tokens",
		slog.Int("days", days),
	)

	defer closeContainer(container, logger)

	tokenRepo, err := container.TokenRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize token repository: %w", err)
	}

	before := time.Now().UTC().AddDate(0, 0, -days)
	count, err := tokenRepo.DeleteExpired(ctx, before)
	if err != nil {
		return fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"count": count,
			"days":  days,
		}
		encoder := json.NewEncoder(os.Stdout)
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		fmt.Printf("Successfully deleted %d expired token(s) older than %d day(s)\n", count, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
	)

	return nil
}
