package create_time_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	declareTimeSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_time_slot"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidInterval       = "некорректное окно: нужно startDate < endDate"
	msgPractitionerNotFound  = "специалист не найден"
	msgLockTimeout           = "рабочие окна специалиста сейчас обрабатываются, повторите попытку"
)

type Handler struct {
	useCase DeclareTimeSlotUseCase
	logger  Logger
}

func NewHandler(useCase DeclareTimeSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/practitioners/{practitionerId}/time-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("POST /practitioners/{id}/time-slots - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	var req CreateTimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /practitioners/{id}/time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(practitionerID)
	if err != nil {
		h.logger.Warn("POST /practitioners/{id}/time-slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, declareTimeSlot.ErrInvalidInput):
			h.logger.Warn("POST /practitioners/{id}/time-slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, declareTimeSlot.ErrPractitionerNotFound):
			h.logger.Warn("POST /practitioners/{id}/time-slots - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, declareTimeSlot.ErrLockTimeout):
			h.logger.Warn("POST /practitioners/{id}/time-slots - Lock timeout: practitioner_id=%d", practitionerID)
			handlers.RespondConflict(w, msgLockTimeout)

		default:
			h.logger.Error("POST /practitioners/{id}/time-slots - Failed to declare time slot: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /practitioners/{id}/time-slots - Time slot created: time_slot_id=%d, practitioner_id=%d, generated=%d",
		result.TimeSlotID, practitionerID, len(result.Availabilities))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
