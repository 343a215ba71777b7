package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-AppointmentService/internal/seed"
)

func newSeedCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty database with demo patients, practitioners and time slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if migrateUp {
				if err := migrations.Up(cmd.Context(), a.wrappedDB); err != nil {
					return err
				}
			}

			seeder := seed.NewSeeder(
				a.practitioners,
				a.patients,
				a.timeSlots,
				a.generateAvailabilities,
				a.txManager,
				a.log,
			)
			_, err = seeder.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations before seeding")

	return cmd
}
