package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestDomainCounters(t *testing.T) {
	m := New("beauty_booking")

	m.IncReservationsCreated()
	m.IncReservationsCreated()
	m.IncReservationConflict("unique_violation")
	m.IncCacheRequest("hit")
	m.ObserveSlotsResolved(5)

	body := scrape(t, m)
	assert.Contains(t, body, `beauty_booking_reservations_created_total{service="beauty_booking"} 2`)
	assert.Contains(t, body, `beauty_booking_reservation_conflicts_total{reason="unique_violation",service="beauty_booking"} 1`)
	assert.Contains(t, body, `beauty_booking_cache_requests_total{result="hit",service="beauty_booking"} 1`)
	assert.Contains(t, body, `beauty_booking_slots_resolved_count{service="beauty_booking"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSlotsResolved(3)
		m.IncReservationsCreated()
		m.IncReservationConflict("serialization")
		m.IncCacheRequest("miss")
	})
}

func TestHTTPAndDBObservations(t *testing.T) {
	m := New("beauty_booking")
	m.ObserveHTTPRequest("beauty_booking", http.MethodGet, "/api/v1/reservations/{reservationId}", http.StatusOK, 10*time.Millisecond)
	m.ObserveDBQuery("beauty_booking", "select", errors.New("boom"), time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, "beauty_booking_http_requests_total")
	assert.Contains(t, body, `operation="select",service="beauty_booking",status="error"`)
	assert.Contains(t, body, "go_goroutines")
}
