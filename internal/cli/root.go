package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const appName = "ai_astro_tarot"

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ai-astro-tarot",
		Short:        "Натальные карты, таро и личный кабинет",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context())
		},
	}

	cmd.AddCommand(newServeCmd(), newChartCmd())
	return cmd
}
