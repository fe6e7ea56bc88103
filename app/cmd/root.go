package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/wheelhouse/partshop/app/config"
	"github.com/wheelhouse/partshop/models"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "partshop",
	Short: "Wheel disks and tires catalog service",
	Long: `partshop serves the disk and tire catalog over HTTP, together with
categories, customers and orders.

Use "serve" to start the API, "migrate" to create or update the schema and
"seed" to load a small demo catalog.`,
	SilenceUsage: true,
}

func newLogger() *log.Logger {
	return log.New(os.Stdout, "[partshop] ", log.LstdFlags|log.Lmicroseconds)
}

// connect loads the configuration and opens the database.
func connect(logger *log.Logger) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Printf("INFO: configuration loaded for APP_ENV: %s, LogLevel: %s", cfg.AppEnv, cfg.LogLevel)

	db, err := models.Open(cfg.Postgres.DSN(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func closeDB(logger *log.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Printf("WARN: error closing database: %v", err)
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
