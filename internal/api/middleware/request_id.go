package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/pkg/requestid"
)

// RequestID берёт X-Request-ID из запроса или генерирует новый,
// кладёт его в контекст и возвращает в заголовке ответа
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestid.Header)
		if id == "" || len(id) > 128 {
			id = requestid.New()
		}

		w.Header().Set(requestid.Header, id)
		next.ServeHTTP(w, r.WithContext(requestid.WithID(r.Context(), id)))
	})
}
