package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all checks pass", func(t *testing.T) {
		w := httptest.NewRecorder()
		Health(map[string]Check{"postgres": ok, "redis": ok})(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"status": "ok", "postgres": "ok", "redis": "ok"}, body)
	})

	t.Run("one failing check degrades", func(t *testing.T) {
		w := httptest.NewRecorder()
		Health(map[string]Check{"postgres": ok, "kafka": down})(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "unavailable", body["kafka"])
		assert.Equal(t, "ok", body["postgres"])
	})

	t.Run("no checks is healthy", func(t *testing.T) {
		w := httptest.NewRecorder()
		Health(nil)(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
