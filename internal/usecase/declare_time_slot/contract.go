package declare_time_slot

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

// PractitionerRepository интерфейс репозитория специалистов
type PractitionerRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// TimeSlotRepository интерфейс репозитория рабочих окон
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error)
}

// AvailabilityGenerator генерация слотов по новым окнам
type AvailabilityGenerator interface {
	Execute(ctx context.Context, req *generate_availabilities.Request) (*generate_availabilities.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
