package main

import (
	"os"

	"github.com/spf13/cobra"

	"subplane/internal/interfaces/cli/migrate"
	"subplane/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "subplane",
		Short: "Subplane - subdomain registry and access-control service",
		Long:  `Subplane tracks subdomain ownership, collaboration, and billing-derived quota, and resolves access roles for tenant applications.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
