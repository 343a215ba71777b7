package create_time_slot

import (
	"context"

	declareTimeSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_time_slot"
)

type DeclareTimeSlotUseCase interface {
	Execute(ctx context.Context, req *declareTimeSlot.Request) (*declareTimeSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
