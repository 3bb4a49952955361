package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/pkg/requestid"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestAuth(t *testing.T) {
	var gotID int64
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		require.True(t, ok)
		gotID = id
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "42", want: http.StatusNoContent},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not a number", header: "abc", want: http.StatusUnauthorized},
		{name: "not positive", header: "0", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set(UserIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
	assert.Equal(t, int64(42), gotID)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(requestid.Header, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(requestid.Header))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "abc-123", seen)
	assert.Equal(t, seen, w.Header().Get(requestid.Header))
}

type recordedRequest struct {
	service, method, route string
	status                 int
}

type fakeHTTPMetrics struct{ calls []recordedRequest }

func (f *fakeHTTPMetrics) ObserveHTTPRequest(service, method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, recordedRequest{service: service, method: method, route: route, status: status})
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m, "beauty_booking"))
	r.HandleFunc("/reservations/{reservationId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reservations/15", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, recordedRequest{
		service: "beauty_booking", method: http.MethodGet, route: "/reservations/{reservationId}", status: http.StatusNotFound,
	}, m.calls[0])
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(1, 2, nopLogger{})
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(userID int64) int {
		r := httptest.NewRequest(http.MethodPost, "/reservations", nil)
		r = r.WithContext(WithUserID(r.Context(), userID))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do(1))
	assert.Equal(t, http.StatusOK, do(1))
	assert.Equal(t, http.StatusTooManyRequests, do(1))
	assert.Equal(t, http.StatusOK, do(2), "лимит считается отдельно для каждого пользователя")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do(1))
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	l := NewRateLimiter(1, 1, nopLogger{})
	now := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.allow("ip:10.0.0.1")
	now = now.Add(limiterIdleTTL + time.Second)
	l.allow("ip:10.0.0.2")
	l.sweep()

	assert.NotContains(t, l.visitors, "ip:10.0.0.1")
	assert.Contains(t, l.visitors, "ip:10.0.0.2")
}

func TestClientKeyFallsBackToIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.5:5555"
	assert.Equal(t, "ip:192.168.1.5", clientKey(r))
}
