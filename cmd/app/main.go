// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/docgen/cmd/app/commands"
	"github.com/allisson/docgen/internal/app"
	"github.com/allisson/docgen/internal/config"
)

const version = "1.0.0"

// withContainer builds the DI container for a one-off command and cleans up
// afterwards.
func withContainer(
	ctx context.Context,
	action func(container *app.Container) error,
) error {
	container := app.NewContainer(config.Load())
	defer func() {
		if err := container.Shutdown(ctx); err != nil {
			container.Logger().Error("failed to shutdown container", slog.Any("error", err))
		}
	}()

	return action(container)
}

func main() {
	cmd := &cli.Command{
		Name:    "docgen",
		Usage:   "Document generation service",
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
				Name:  "generate",
				Usage: "Generate a PDF document from stored templates",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "html",
						Required: true,
						Usage:    "HTML template object name in the bucket",
					},
					&cli.StringFlag{
						Name:     "css",
						Required: true,
						Usage:    "CSS template object name in the bucket",
					},
					&cli.StringFlag{
						Name:     "id",
						Required: true,
						Usage:    "Document id for the generated record",
					},
					&cli.StringFlag{
						Name:  "variables",
						Usage: "JSON object with template variables",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						useCase, err := container.DocumentUseCase()
						if err != nil {
							return fmt.Errorf("failed to initialize document use case: %w", err)
						}
						return commands.RunGenerate(
							ctx, useCase, container.Logger(), os.Stdout,
							cmd.String("html"),
							cmd.String("css"),
							cmd.String("id"),
							cmd.String("variables"),
							cmd.String("format"),
						)
					})
				},
			},
			{
				Name:  "load",
				Usage: "Look up a generated document record",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Required: true,
						Usage:    "Document id to look up",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						useCase, err := container.DocumentUseCase()
						if err != nil {
							return fmt.Errorf("failed to initialize document use case: %w", err)
						}
						return commands.RunLoad(
							ctx, useCase, container.Logger(), os.Stdout,
							cmd.String("id"),
							cmd.String("format"),
						)
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
