package get_reservation

import (
	"context"
	"encoding/json"
	"fmt"
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

func (f *fakeService) GetByID(_ context.Context, id int64, _ int64) (*models.ReservationResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, Status: "pending", Date: "2024-06-03", StartTime: "10:00"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, id string, userID int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"reservationId": id})
	if userID != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_OK(t *testing.T) {
	w := serve(&fakeService{}, "5", 1)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		userID int64
		err    error
		want   int
	}{
		{"bad id", "abc", 1, nil, http.StatusBadRequest},
		{"no user", "5", 0, nil, http.StatusUnauthorized},
		{"not found", "5", 1, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"stranger", "5", 1, reservations.ErrAccessDenied, http.StatusForbidden},
		{"internal", "5", 1, fmt.Errorf("%w: db down", reservations.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.id, tt.userID)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
