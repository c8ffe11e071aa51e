// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/sealbox/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "sealbox",
		Usage:   "Envelope encryption service for application secrets",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-key",
				Usage: "Generate a new 32-byte encryption key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "id",
						Aliases: []string{"i"},
						Value:   "",
						Usage:   "Key ID (e.g., prod-key-2026)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateKey(os.Stdout, cmd.String("id"))
				},
			},
			{
				Name:  "keys",
				Usage: "List configured encryption key ids",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunListKeys(cmd.String("format"))
				},
			},
			{
				Name:  "encrypt",
				Usage: "Encrypt a base64-encoded value with the configured keys",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Base64-encoded plaintext value",
					},
					&cli.StringFlag{
						Name:    "key-id",
						Aliases: []string{"k"},
						Value:   "",
						Usage:   "Key ID to encrypt with (defaults to the ring default)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncrypt(cmd.String("value"), cmd.String("key-id"))
				},
			},
			{
				Name:  "decrypt",
				Usage: "Decrypt a base64-encoded envelope",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Base64-encoded envelope",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecrypt(cmd.String("value"))
				},
			},
			{
				Name:  "create-user",
				Usage: "Register a new user account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "User name",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "User email",
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Required: true,
						Usage:    "User password",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateUser(
						ctx,
						cmd.String("name"),
						cmd.String("email"),
						cmd.String("password"),
						cmd.String("format"),
					)
				},
			},
			{
				Name:  "clean-expired-tokens",
				Usage: "Delete session tokens that expired more than N days ago",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "days",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Delete tokens expired more than this many days ago",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanExpiredTokens(
						ctx,
						int(cmd.Int("days")),
						cmd.String("format"),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
