package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/database"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"github.com/jobayerhossain-ai/Bangla-Quotes/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "bangla-quotes",
		Short:         "Bangla Quotes API server",
		Long:          "REST backend for the bilingual Bangla/English quotes CMS.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(path)
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default is "+config.DefaultPath+")")

	cmd.AddCommand(newServeCommand(&path))
	cmd.AddCommand(newMigrateCommand(&path))
	cmd.AddCommand(newSeedCommand(&path))
	cmd.AddCommand(newResetAdminCommand(&path))

	return cmd
}

// bootstrap loads configuration, sets up logging and opens the database.
func bootstrap(path string) (*config.Config, *gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Log)
	gin.SetMode(cfg.Server.Mode)
	utils.ExposeInternalErrors(cfg.IsDevelopment())

	db, err := database.Connect(cfg.Database, cfg.IsDevelopment())
	if err != nil {
		logger.Close()
		return nil, nil, err
	}
	return cfg, db, nil
}

func shutdown(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		logrus.WithError(err).Warn("failed to close database")
	}
	logger.Close()
}
