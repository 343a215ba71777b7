package book_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает интервал записи
func validateRequest(req *Request) (domain.Interval, error) {
	if req == nil {
		return domain.Interval{}, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.PatientID <= 0 {
		return domain.Interval{}, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.PractitionerID <= 0 {
		return domain.Interval{}, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	interval, err := domain.NewInterval(req.StartDate, req.EndDate)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return interval, nil
}
