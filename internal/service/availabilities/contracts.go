package availabilities

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	GetByPractitionerID(ctx context.Context, practitionerID int64, status *domain.AvailabilityStatus) ([]*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
