package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/app"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Запустить HTTP API",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, _ []string) error {
			return runServe(c.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := app.NewEnvConfig(app.EnvPrefix)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.New(appName, cfg).Run(ctx)
}
