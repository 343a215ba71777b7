package create_time_slot

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	generateHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/generate_availabilities"
	declareTimeSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_time_slot"
)

// CreateTimeSlotRequest HTTP request model
type CreateTimeSlotRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// TimeSlotResponse HTTP response model
type TimeSlotResponse struct {
	ID             int64                                  `json:"id"`
	PractitionerID int64                                  `json:"practitionerId"`
	StartDate      string                                 `json:"startDate"`
	EndDate        string                                 `json:"endDate"`
	Status         string                                 `json:"status"`
	Availabilities []generateHandler.AvailabilityResponse `json:"availabilities"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateTimeSlotRequest) ToUseCaseRequest(practitionerID int64) (*declareTimeSlot.Request, error) {
	start, err := handlers.ParseDateTime(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	end, err := handlers.ParseDateTime(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &declareTimeSlot.Request{
		PractitionerID: practitionerID,
		StartDate:      start,
		EndDate:        end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *declareTimeSlot.Response) *TimeSlotResponse {
	return &TimeSlotResponse{
		ID:             resp.TimeSlotID,
		PractitionerID: resp.PractitionerID,
		StartDate:      handlers.FormatDateTime(resp.StartDate),
		EndDate:        handlers.FormatDateTime(resp.EndDate),
		Status:         resp.Status,
		Availabilities: generateHandler.FromUseCaseAvailabilities(resp.Availabilities),
	}
}
