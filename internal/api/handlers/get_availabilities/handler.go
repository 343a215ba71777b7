package get_availabilities

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidPractitionerID = "некорректный или отсутствующий practitionerId"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availabilities?practitionerId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	practitionerID, err := handlers.QueryInt64(r, "practitionerId")
	if err != nil {
		h.logger.Warn("GET /availabilities - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	result, err := h.service.GetFree(r.Context(), practitionerID)
	if err != nil {
		h.logger.Error("GET /availabilities - Failed to get availabilities: practitioner_id=%d, error=%v",
			practitionerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availabilities - Availabilities retrieved successfully: practitioner_id=%d, count=%d",
		practitionerID, len(result.Availabilities))
	handlers.RespondJSON(w, http.StatusOK, result.Availabilities)
}
