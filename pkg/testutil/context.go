package testutil

import (
	"context"
	"net/http"
	"time"

	"prefsync/pkg/requestcontext"
)

// WithRequestTime pins the request-scoped clock, simulating the requesttime
// middleware for handler tests that need deterministic mute deadlines.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
