package generate_availabilities

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	generateAvailabilities "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ID             int64  `json:"id"`
	PractitionerID int64  `json:"practitionerId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

// FromUseCaseAvailabilities конвертирует созданные слоты в HTTP response
func FromUseCaseAvailabilities(availabilities []generateAvailabilities.Availability) []AvailabilityResponse {
	resp := make([]AvailabilityResponse, 0, len(availabilities))
	for _, a := range availabilities {
		resp = append(resp, AvailabilityResponse{
			ID:             a.ID,
			PractitionerID: a.PractitionerID,
			StartDate:      handlers.FormatDateTime(a.StartDate),
			EndDate:        handlers.FormatDateTime(a.EndDate),
		})
	}
	return resp
}
