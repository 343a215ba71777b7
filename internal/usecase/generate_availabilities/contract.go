package generate_availabilities

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TimeSlotRepository интерфейс репозитория рабочих окон
type TimeSlotRepository interface {
	GetPendingByPractitionerID(ctx context.Context, practitionerID int64) ([]*domain.TimeSlot, error)
	UpdateStatuses(ctx context.Context, slots []*domain.TimeSlot) error
}

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	GetByPractitionerInRange(ctx context.Context, practitionerID int64, rng domain.Interval) ([]*domain.Availability, error)
	CreateBatch(ctx context.Context, availabilities []*domain.Availability) ([]*domain.Availability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetConfirmedByPractitionerInRange(ctx context.Context, practitionerID int64, rng domain.Interval) ([]*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики генерации
type Metrics interface {
	AddAvailabilitiesGenerated(n int)
	AddTimeSlotsProcessed(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
