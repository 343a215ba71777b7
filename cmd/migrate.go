package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/migrations"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create database tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := migrations.Up(cmd.Context(), a.wrappedDB); err != nil {
				a.log.Error("Migration failed: %v", err)
				return err
			}

			a.log.Info("Database schema is up to date")
			return nil
		},
	}
}
