// Package requesttime captures one "now" per request so validation and the
// entity snapshot agree on whether a mute deadline is already in the past.
package requesttime

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"prefsync/pkg/requestcontext"
)

// Middleware stores the request start time and a request ID in the context.
// An incoming X-Request-ID header is honoured.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
