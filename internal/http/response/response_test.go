package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Body {
	t.Helper()
	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, map[string]string{"status": "healthy"}, discardLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestError_UsesCodeStatus(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, domainerrors.InvalidRange("saturation min exceeds max").WithDetails(map[string]int{"index": 0}), discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "INVALID_RANGE", body.Code)
	assert.Equal(t, "saturation min exceeds max", body.Message)
	assert.NotNil(t, body.Details)
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"not found", func(w http.ResponseWriter) { NotFound(w, "no route", nil) }, http.StatusNotFound, "NOT_FOUND"},
		{"too many requests", func(w http.ResponseWriter) { TooManyRequests(w, "slow down", nil) }, http.StatusTooManyRequests, "RATE_LIMITED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Code)
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Run("domain error keeps code", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleError(w, domainerrors.Validation("bad input"), discardLogger())

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION", decode(t, w).Code)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleError(w, errors.New("boom"), discardLogger())

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, "INTERNAL", body.Code)
		assert.Equal(t, "internal server error", body.Message)
	})
}
