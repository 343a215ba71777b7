package generate_availabilities

import (
	"context"

	generateAvailabilities "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

type GenerateAvailabilitiesUseCase interface {
	Execute(ctx context.Context, req *generateAvailabilities.Request) (*generateAvailabilities.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
