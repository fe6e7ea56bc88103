package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wheelhouse/partshop/models"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		_, db, err := connect(logger)
		if err != nil {
			return err
		}
		defer closeDB(logger, db)

		if err := models.AutoMigrate(db.WithContext(cmd.Context())); err != nil {
			return err
		}
		logger.Println("INFO: Schema migrated.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
