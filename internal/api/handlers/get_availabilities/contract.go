package get_availabilities

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/availabilities/models"
)

type AvailabilityService interface {
	GetFree(ctx context.Context, practitionerID int64) (*models.AvailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
