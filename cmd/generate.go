package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	generateAvailabilitiesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

func newGenerateCmd(configPath *string) *cobra.Command {
	var practitionerID int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate availabilities from new and modified time slots of a practitioner",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.generateAvailabilities.Execute(cmd.Context(),
				&generateAvailabilitiesUC.Request{PractitionerID: practitionerID})
			if err != nil {
				return err
			}

			for _, av := range resp.Availabilities {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", av.ID,
					av.StartDate.Format(domain.DateTimeFormat), av.EndDate.Format(domain.DateTimeFormat))
			}
			a.log.Info("Generated %d availabilities for practitioner=%d", len(resp.Availabilities), practitionerID)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&practitionerID, "practitioner", "p", 0, "practitioner ID")
	_ = cmd.MarkFlagRequired("practitioner")

	return cmd
}
