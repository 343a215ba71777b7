package get_appointments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	result *models.AppointmentListResponse
	err    error
}

func (f fakeService) GetAll(context.Context) (*models.AppointmentListResponse, error) {
	return f.result, f.err
}

func serve(service AppointmentService) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments", NewHandler(service, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	rec := serve(fakeService{result: &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{
		{ID: 1, PatientID: 2, PractitionerID: 3, StartDate: "2021-02-08T11:00:00Z", EndDate: "2021-02-08T11:15:00Z"},
		{ID: 4, PatientID: 5, PractitionerID: 3, StartDate: "2021-02-08T11:15:00Z", EndDate: "2021-02-08T11:30:00Z"},
	}}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[
		{"id":1,"patientId":2,"practitionerId":3,"startDate":"2021-02-08T11:00:00Z","endDate":"2021-02-08T11:15:00Z"},
		{"id":4,"patientId":5,"practitionerId":3,"startDate":"2021-02-08T11:15:00Z","endDate":"2021-02-08T11:30:00Z"}
	]`, rec.Body.String())
}

func TestHandle_Empty(t *testing.T) {
	rec := serve(fakeService{result: &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_ServiceError(t *testing.T) {
	rec := serve(fakeService{err: errors.New("appointment.repository: failed to execute query")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "failed to execute query")
}
