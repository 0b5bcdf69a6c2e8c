package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{"message": "success", "data": 123})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "success", response["message"])
	assert.Equal(t, float64(123), response["data"])
}

func TestRespondWithJSON_EncodeFailure(t *testing.T) {
	buf, log := logger.NewTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Len(t, buf.FindEntries("failed to encode JSON response"), 1)
}

func TestRespondWithError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req = req.WithContext(context.WithValue(req.Context(), TraceIDKey, "trace-123"))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "Task not found.")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Task not found.", body.Error)
	assert.Equal(t, "trace-123", body.TraceID)
	assert.NotContains(t, w.Body.String(), "404", "code is not serialized")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	buf, log := logger.NewTestLogger(t)

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/tasks/run/x", nil)
		return req.WithContext(logger.WithLogger(req.Context(), log))
	}

	t.Run("server error is logged redacted at error level", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		err := errors.New("dial postgres://app:s3cret@db:5432/tasks failed")

		RespondWithErrorAndLog(w, newReq(), http.StatusInternalServerError, "An error occurred while running the task.", err)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "s3cret")
		assert.NotContains(t, w.Body.String(), "dial")

		entries := buf.FindEntries("API error response")
		require.Len(t, entries, 1)
		assert.Equal(t, "ERROR", entries[0]["level"])
		assert.NotContains(t, entries[0]["error"], "s3cret")
		assert.Equal(t, "*errors.errorString", entries[0]["error_type"])
	})

	t.Run("client error is logged at debug level", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()

		RespondWithErrorAndLog(w, newReq(), http.StatusBadRequest, "Invalid task ID format", errors.New("bad id"))

		entries := buf.FindEntries("API error response")
		require.Len(t, entries, 1)
		assert.Equal(t, "DEBUG", entries[0]["level"])
		assert.Equal(t, float64(http.StatusBadRequest), entries[0]["status_code"])
	})
}
