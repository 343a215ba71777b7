package generate_availabilities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	generateAvailabilities "github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgLockTimeout           = "рабочие окна специалиста сейчас обрабатываются, повторите попытку"
)

type Handler struct {
	useCase GenerateAvailabilitiesUseCase
	logger  Logger
}

func NewHandler(useCase GenerateAvailabilitiesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/practitioners/{practitionerId}/availabilities/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.PathInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("POST /practitioners/{id}/availabilities/generate - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateAvailabilities.Request{PractitionerID: practitionerID})
	if err != nil {
		switch {
		case errors.Is(err, generateAvailabilities.ErrInvalidInput):
			h.logger.Warn("POST /practitioners/{id}/availabilities/generate - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPractitionerID)

		case errors.Is(err, generateAvailabilities.ErrLockTimeout):
			h.logger.Warn("POST /practitioners/{id}/availabilities/generate - Lock timeout: practitioner_id=%d",
				practitionerID)
			handlers.RespondConflict(w, msgLockTimeout)

		default:
			h.logger.Error("POST /practitioners/{id}/availabilities/generate - Failed to generate: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /practitioners/{id}/availabilities/generate - Generated: practitioner_id=%d, count=%d",
		practitionerID, len(result.Availabilities))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseAvailabilities(result.Availabilities))
}
