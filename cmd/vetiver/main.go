package main

import (
	"os"

	"github.com/spf13/cobra"

	"vetiver/internal/interfaces/cli/migrate"
	"vetiver/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vetiver",
		Short: "Vetiver - a support ticket record service",
		Long:  `Vetiver is a support ticket record service with versioned merge-import, soft deletion, and built-in migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
