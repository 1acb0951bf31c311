package cmd

import (
	"github.com/spf13/cobra"

	"github.com/DhavalSuthar-24/scorebook/config"
	"github.com/DhavalSuthar-24/scorebook/internal/store"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			if err := store.Migrate(config.DB); err != nil {
				return err
			}
			log.Info("AutoMigrate successful")
			return nil
		},
	}
}
