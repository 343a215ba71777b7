package get_patients

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/directory/models"
)

type DirectoryService interface {
	GetPatients(ctx context.Context) ([]models.PatientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
