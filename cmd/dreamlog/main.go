package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamlog-app/dreamlog/internal/interfaces/cli/migrate"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/cli/server"
	"github.com/dreamlog-app/dreamlog/internal/shared/version"
)

// @title						Dreamlog API
// @version					1.0
// @description				Dream journal backend with metered AI insights and Stripe subscriptions.
// @BasePath					/api
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @description				Supabase access token, as "Bearer {token}"
func main() {
	rootCmd := &cobra.Command{
		Use:   "dreamlog",
		Short: "Dreamlog - dream journal backend",
		Long:  `Dreamlog serves the dream journal API: accounts, dreams, metered AI insights and Stripe billing.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("dreamlog %s (%s)\n", version.String(), version.Commit)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
