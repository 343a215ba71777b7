package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	bookAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidRequest       = "некорректные данные записи: нужны положительные patientId, practitionerId и startDate < endDate"
	msgPractitionerNotFound = "специалист не найден"
	msgPatientNotFound      = "пациент не найден"
	msgAvailabilityNotFound = "свободный слот с такими границами не найден"
	msgAppointmentOverlap   = "у пациента уже есть запись на пересекающееся время"
	msgLockTimeout          = "слот сейчас бронируется другим запросом, повторите попытку"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, bookAppointment.ErrPractitionerNotFound):
			h.logger.Warn("POST /appointments - Practitioner not found: practitioner_id=%d", useCaseReq.PractitionerID)
			handlers.RespondNotFound(w, msgPractitionerNotFound)

		case errors.Is(err, bookAppointment.ErrPatientNotFound):
			h.logger.Warn("POST /appointments - Patient not found: patient_id=%d", useCaseReq.PatientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, bookAppointment.ErrAvailabilityNotFound):
			h.logger.Warn("POST /appointments - Availability not found: practitioner_id=%d, start=%s",
				useCaseReq.PractitionerID, handlers.FormatDateTime(useCaseReq.StartDate))
			handlers.RespondNotFound(w, msgAvailabilityNotFound)

		case errors.Is(err, bookAppointment.ErrAppointmentOverlap):
			h.logger.Warn("POST /appointments - Overlap: patient_id=%d", useCaseReq.PatientID)
			handlers.RespondConflict(w, msgAppointmentOverlap)

		case errors.Is(err, bookAppointment.ErrLockTimeout):
			h.logger.Warn("POST /appointments - Lock timeout: patient_id=%d, practitioner_id=%d",
				useCaseReq.PatientID, useCaseReq.PractitionerID)
			handlers.RespondConflict(w, msgLockTimeout)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: patient_id=%d, practitioner_id=%d, error=%v",
				useCaseReq.PatientID, useCaseReq.PractitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, patient_id=%d, practitioner_id=%d",
		result.ID, result.PatientID, result.PractitionerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
