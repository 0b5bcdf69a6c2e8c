package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasktimer-api/internal/api/middleware"
	"github.com/phrazzld/tasktimer-api/internal/api/shared"
	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	buf, base := logger.NewTestLogger(t)

	var traceID string
	handler := middleware.NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, traceID, 32)

	started := buf.FindEntries("request started")
	require.Len(t, started, 1)
	assert.Equal(t, traceID, started[0]["trace_id"])
	assert.Equal(t, "/tasks", started[0]["path"])

	inside := buf.FindEntries("inside handler")
	require.Len(t, inside, 1)
	assert.Equal(t, traceID, inside[0]["trace_id"])
}

func TestTraceMiddleware_DistinctIDs(t *testing.T) {
	seen := map[string]bool{}
	handler := middleware.NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[shared.GetTraceID(r.Context())] = true
	}))

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Len(t, seen, 3)
}
