// Package response writes JSON error bodies for plain net/http handlers and middleware.
// The body shape matches the one huma handlers produce, so clients see one error format.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/listenupapp/colorhash/internal/errors"
)

// Body is the JSON error structure.
type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes data as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil && logger != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// Error writes a domain error using its code's HTTP status.
func Error(w http.ResponseWriter, err *domainerrors.Error, logger *slog.Logger) {
	JSON(w, err.HTTPStatus(), Body{
		Code:    string(err.Code),
		Message: err.Message,
		Details: err.Details,
	}, logger)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.NotFound(message), logger)
}

// TooManyRequests writes a 429 response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.RateLimited(message), logger)
}

// HandleError writes an appropriate response for err.
// Domain errors keep their code; anything else becomes a 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		Error(w, domainErr, logger)
		return
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	Error(w, domainerrors.Internal("internal server error"), logger)
}
