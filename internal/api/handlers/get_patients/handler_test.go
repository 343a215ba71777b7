package get_patients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/directory/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	result []models.PatientResponse
	err    error
}

func (f fakeService) GetPatients(context.Context) ([]models.PatientResponse, error) {
	return f.result, f.err
}

func serve(service DirectoryService) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/patients", NewHandler(service, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	birthDate := "1990-01-15"
	rec := serve(fakeService{result: []models.PatientResponse{
		{ID: 1, FirstName: "patient_1", LastName: "example", BirthDate: &birthDate},
		{ID: 2, FirstName: "patient_2", LastName: "example"},
	}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":1,"firstName":"patient_1","lastName":"example","birthDate":"1990-01-15"},
		{"id":2,"firstName":"patient_2","lastName":"example"}
	]`, rec.Body.String())
}

func TestHandle_ServiceError(t *testing.T) {
	rec := serve(fakeService{err: errors.New("patient.repository: failed to execute query")})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "failed to execute query")
}
