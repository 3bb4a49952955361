package get_professional_reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"
)

type fakeService struct {
	err error
}

func (f *fakeService) ListByProfessional(_ context.Context, req *models.GetProfessionalReservationsRequest) (*models.ReservationListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{
		{ID: 1, ProfessionalID: req.ProfessionalID, StartTime: "10:00"},
		{ID: 2, ProfessionalID: req.ProfessionalID, StartTime: "11:30"},
	}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r = mux.SetURLVars(r, map[string]string{"professionalId": "7"})
	r = r.WithContext(middleware.WithUserID(r.Context(), 7))
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_ReturnsList(t *testing.T) {
	w := serve(&fakeService{}, "/api/v1/professionals/7/reservations?date=2024-06-03")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []models.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "11:30", resp[1].StartTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   int
	}{
		{"bad date", "/api/v1/professionals/7/reservations?date=bad", nil, http.StatusBadRequest},
		{"stranger", "/api/v1/professionals/7/reservations", reservations.ErrAccessDenied, http.StatusForbidden},
		{"reversed range", "/api/v1/professionals/7/reservations", reservations.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/api/v1/professionals/7/reservations", reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.target)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
