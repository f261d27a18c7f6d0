package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"travel-booking/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

// travel-booking migrate up
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations (mongo: ensure indexes)",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := openStore(cmd.Context(), config, logger)
		if err != nil {
			return err
		}
		defer db.close()

		fmt.Println("Running migrations…")
		if err := db.migrate(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Migrations applied")
		return nil
	},
}

// travel-booking migrate down
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := openStore(cmd.Context(), config, logger)
		if err != nil {
			return err
		}
		defer db.close()

		if db.pg == nil {
			return errors.New("migrate down is only supported for the postgres driver")
		}

		fmt.Println("Rolling back last migration…")
		return database.MigrateDown(db.pg)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
