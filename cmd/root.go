package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "travel-booking",
	Short: "Travel package booking API",
	Long:  "travel-booking serves the travel package catalogue and booking API. Run without a subcommand to start the HTTP server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)

	// Accounts
	rootCmd.AddCommand(createAdminCmd)
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
