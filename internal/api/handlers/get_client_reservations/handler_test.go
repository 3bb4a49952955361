package get_client_reservations

import (
	"context"
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
	err     error
	lastReq *models.GetClientReservationsRequest
}

func (f *fakeService) ListByClient(_ context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, clientID, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+clientID+"/reservations"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"clientId": clientID})
	r = r.WithContext(middleware.WithUserID(r.Context(), 11))
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "11", "?status=pending")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	require.NotNil(t, svc.lastReq.Status)
	assert.Equal(t, "pending", *svc.lastReq.Status)
	assert.Equal(t, int64(11), svc.lastReq.ClientID)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "abc", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: reservations.ErrAccessDenied}, "12", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: reservations.ErrInvalidInput}, "11", "?status=x").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: reservations.ErrInternal}, "11", "").Code)
}
