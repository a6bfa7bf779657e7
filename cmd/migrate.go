package cmd

import (
	"articlelike/config"
	"articlelike/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users, articles and likes tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := config.OpenDB(cfg.Database)
		if err != nil {
			return err
		}
		defer closeDB(db)
		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		logger.Info("migration complete", zap.String("driver", cfg.Database.Driver))
		return nil
	},
}
