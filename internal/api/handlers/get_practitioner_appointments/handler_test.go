package get_practitioner_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct{}

func (fakeService) GetByPractitioner(_ context.Context, practitionerID int64) (*models.AppointmentListResponse, error) {
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{
		{ID: 1, PatientID: 2, PractitionerID: practitionerID, StartDate: "2021-02-08T11:00:00Z", EndDate: "2021-02-08T11:15:00Z"},
	}}, nil
}

func TestHandle(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{practitionerId}", NewHandler(fakeService{}, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/9", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"id":1,"patientId":2,"practitionerId":9,"startDate":"2021-02-08T11:00:00Z","endDate":"2021-02-08T11:15:00Z"}]`,
		rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
