package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wheelhouse/partshop/app/catalog"
	"github.com/wheelhouse/partshop/app/server"
	"github.com/wheelhouse/partshop/models"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the gRPC health server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "run schema migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	logger.Println("INFO: Starting service...")

	cfg, db, err := connect(logger)
	if err != nil {
		return err
	}
	defer closeDB(logger, db)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	logger.Println("INFO: Database connection established.")

	if migrateOnStart {
		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		logger.Println("INFO: Schema migrated.")
	}

	money := catalog.NewMoney(cfg.CurrencySymbol)
	router := server.NewRouter(server.NewHandlers(db, money), sqlDB)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, router, logger).Run(ctx); err != nil {
		return err
	}
	logger.Println("INFO: Service shutdown sequence finished.")
	return nil
}
