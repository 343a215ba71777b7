package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID      *int64 `json:"patientId"`
	PractitionerID *int64 `json:"practitionerId"`
	StartDate      string `json:"startDate"` // "2021-02-08T11:00:00Z"
	EndDate        string `json:"endDate"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64  `json:"id"`
	PatientID      int64  `json:"patientId"`
	PractitionerID int64  `json:"practitionerId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	if r.PatientID == nil {
		return nil, fmt.Errorf("patientId is required")
	}
	if r.PractitionerID == nil {
		return nil, fmt.Errorf("practitionerId is required")
	}

	start, err := handlers.ParseDateTime(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}

	end, err := handlers.ParseDateTime(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &bookAppointment.Request{
		PatientID:      *r.PatientID,
		PractitionerID: *r.PractitionerID,
		StartDate:      start,
		EndDate:        end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             resp.ID,
		PatientID:      resp.PatientID,
		PractitionerID: resp.PractitionerID,
		StartDate:      handlers.FormatDateTime(resp.StartDate),
		EndDate:        handlers.FormatDateTime(resp.EndDate),
	}
}
