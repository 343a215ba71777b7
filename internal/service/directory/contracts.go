package directory

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PractitionerRepository интерфейс репозитория специалистов
type PractitionerRepository interface {
	GetAll(ctx context.Context) ([]*domain.Practitioner, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	GetAll(ctx context.Context) ([]*domain.Patient, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
