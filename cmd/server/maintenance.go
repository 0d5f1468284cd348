package main

import (
	"fmt"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/database"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap(*path)
			if err != nil {
				return err
			}
			defer shutdown(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to auto migrate: %w", err)
			}
			logrus.Info("database migrated")
			return nil
		},
	}
}

func newSeedCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the super admin, default categories and feature toggles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap(*path)
			if err != nil {
				return err
			}
			defer shutdown(db)

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to auto migrate: %w", err)
			}
			if _, err := database.SeedAdmin(db, cfg.Admin); err != nil {
				return fmt.Errorf("failed to seed admin: %w", err)
			}
			if err := database.SeedContent(db); err != nil {
				return fmt.Errorf("failed to seed content: %w", err)
			}
			if err := services.InitializeFeatureToggles(db); err != nil {
				return fmt.Errorf("failed to seed feature toggles: %w", err)
			}
			logrus.Info("seed complete")
			return nil
		},
	}
}

func newResetAdminCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-admin",
		Short: "Reset the seed admin's password and reactivate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap(*path)
			if err != nil {
				return err
			}
			defer shutdown(db)

			if err := database.ResetAdmin(db, cfg.Admin); err != nil {
				return fmt.Errorf("failed to reset admin: %w", err)
			}
			logrus.WithField("email", cfg.Admin.Email).Info("admin reset")
			return nil
		},
	}
}
