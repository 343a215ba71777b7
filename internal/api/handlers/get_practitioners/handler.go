package get_practitioners

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Handler struct {
	service DirectoryService
	logger  Logger
}

func NewHandler(service DirectoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPractitioners(r.Context())
	if err != nil {
		h.logger.Error("GET /practitioners - Failed to get practitioners: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /practitioners - Practitioners retrieved successfully: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
