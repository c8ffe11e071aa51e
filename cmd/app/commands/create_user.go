package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/allisson/sealbox/internal/app"
	"github.com/allisson/sealbox/internal/config"
	userUseCase "github.com/allisson/sealbox/internal/user/usecase"
)

// RunCreateUser registers a new user account from the command line.
// The password goes through the same validation and Argon2id hashing as the
// registration endpoint. Supports text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(ctx context.Context, name, email, password, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("creating user", slog.String("email", email))

	defer closeContainer(container, logger)

	useCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := useCase.RegisterUser(ctx, userUseCase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		result := map[string]interface{}{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	} else {
		fmt.Printf("User created successfully\n")
		fmt.Printf("  ID:    %s\n", user.ID)
		fmt.Printf("  Name:  %s\n", user.Name)
		fmt.Printf("  Email: %s\n", user.Email)
	}

	return nil
}
