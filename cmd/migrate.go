package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sidhant-sriv/rentease-api/db"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}

			DB, err := db.Connect(cfg.Database, cfg.Server.Mode == "debug")
			if err != nil {
				return err
			}
			sqlDB, err := DB.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			return db.MakeMigration(DB, log)
		},
	}
}
