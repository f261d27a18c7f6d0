package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
)

var adminFlags request.CreateAdminRequest

// travel-booking create-admin --email a@b.c --password secret
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account, or promote an existing user to admin",
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

		deps, release, err := buildDeps(cmd.Context(), config, logger)
		if err != nil {
			return err
		}
		defer release()

		service := usecase.NewService(db.repo, deps, config, logger)
		admin, err := service.Auth.CreateAdmin(cmd.Context(), &adminFlags)
		if err != nil {
			return err
		}

		logger.Info("Admin ready", zap.String("user_id", admin.ID), zap.String("email", admin.Email))
		fmt.Printf("Admin %s (%s) ready\n", admin.Email, admin.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.Email, "email", "", "admin email (required)")
	createAdminCmd.Flags().StringVar(&adminFlags.Password, "password", "", "admin password (required)")
	createAdminCmd.Flags().StringVar(&adminFlags.Name, "name", "", "display name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
