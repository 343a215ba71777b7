package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AvailabilityResponse ответ с данными слота
type AvailabilityResponse struct {
	ID             int64  `json:"id"`
	PractitionerID int64  `json:"practitionerId"`
	StartDate      string `json:"startDate"` // RFC3339
	EndDate        string `json:"endDate"`   // RFC3339
}

// AvailabilityListResponse ответ со списком слотов
type AvailabilityListResponse struct {
	Availabilities []AvailabilityResponse `json:"availabilities"`
}

// FromDomainAvailabilityList конвертирует список domain моделей в DTO
func FromDomainAvailabilityList(availabilities []*domain.Availability) *AvailabilityListResponse {
	resp := &AvailabilityListResponse{
		Availabilities: make([]AvailabilityResponse, 0, len(availabilities)),
	}

	for _, a := range availabilities {
		if a == nil {
			continue
		}
		resp.Availabilities = append(resp.Availabilities, AvailabilityResponse{
			ID:             a.ID,
			PractitionerID: a.PractitionerID,
			StartDate:      a.Interval.Start.Format(domain.DateTimeFormat),
			EndDate:        a.Interval.End.Format(domain.DateTimeFormat),
		})
	}

	return resp
}
