package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wheelhouse/partshop/models"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo categories, disks and tires",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		_, db, err := connect(logger)
		if err != nil {
			return err
		}
		defer closeDB(logger, db)

		if err := models.SeedDemoData(cmd.Context(), db); err != nil {
			return err
		}
		logger.Println("INFO: Demo catalog seeded.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
