package book_appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PractitionerRepository интерфейс репозитория специалистов
type PractitionerRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	GetForUpdate(ctx context.Context, id int64) (*domain.Patient, error)
}

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	GetFreeForUpdate(ctx context.Context, practitionerID int64, interval domain.Interval) (*domain.Availability, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AvailabilityStatus) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindOverlappingForPatient(ctx context.Context, patientID int64, interval domain.Interval) ([]*domain.Appointment, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncAppointmentsBooked()
	IncBookingFailure(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
