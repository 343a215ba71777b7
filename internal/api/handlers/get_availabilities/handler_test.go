package get_availabilities

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/availabilities/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	got int64
	err error
}

func (f *fakeService) GetFree(_ context.Context, practitionerID int64) (*models.AvailabilityListResponse, error) {
	f.got = practitionerID
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityListResponse{Availabilities: []models.AvailabilityResponse{
		{ID: 1, PractitionerID: practitionerID, StartDate: "2021-02-08T11:00:00Z", EndDate: "2021-02-08T11:15:00Z"},
	}}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		err      error
		want     int
		wantBody string
	}{
		{
			name:     "ok",
			query:    "?practitionerId=3",
			want:     http.StatusOK,
			wantBody: `[{"id":1,"practitionerId":3,"startDate":"2021-02-08T11:00:00Z","endDate":"2021-02-08T11:15:00Z"}]`,
		},
		{name: "missing", query: "", want: http.StatusBadRequest},
		{name: "not a number", query: "?practitionerId=x", want: http.StatusBadRequest},
		{name: "service error", query: "?practitionerId=3", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availabilities"+tt.query, nil))

			assert.Equal(t, tt.want, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
