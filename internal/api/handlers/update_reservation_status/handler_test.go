package update_reservation_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/reservations/models"
)

type fakeService struct {
	err     error
	lastID  int64
	lastReq *models.UpdateStatusRequest
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	f.lastID = id
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationResponse{ID: id, Status: req.Status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/reservations/"+id+"/status", strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"reservationId": id})
	r = r.WithContext(middleware.WithUserID(r.Context(), 7))
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_Accept(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "5", `{"status":"accepted"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), svc.lastID)
	assert.Equal(t, int64(7), svc.lastReq.UserID)
	assert.Equal(t, "accepted", svc.lastReq.Status)
	assert.Contains(t, w.Body.String(), `"status":"accepted"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		err  error
		want int
	}{
		{"bad id", "x", `{"status":"accepted"}`, nil, http.StatusBadRequest},
		{"empty body", "5", "", nil, http.StatusBadRequest},
		{"unknown status", "5", `{"status":"done"}`, reservations.ErrInvalidInput, http.StatusBadRequest},
		{"not professional", "5", `{"status":"accepted"}`, reservations.ErrAccessDenied, http.StatusForbidden},
		{"not found", "5", `{"status":"accepted"}`, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"already decided", "5", `{"status":"rejected"}`, reservations.ErrInvalidTransition, http.StatusConflict},
		{"internal", "5", `{"status":"accepted"}`, reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.id, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
