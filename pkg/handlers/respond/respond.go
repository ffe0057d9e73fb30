// Package respond writes JSON responses and maps domain errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/chris/transaction-backoffice/pkg/validation"
)

// RetryAfterSeconds is sent with every 503.
const RetryAfterSeconds = "1"

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Decode reads a JSON body into dst and validates it. On failure it writes a
// 400 and returns false.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	if err := validation.Struct(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// StatusCode maps err to the HTTP status a client should see.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInvalidState),
		errors.Is(err, models.ErrAlreadyPending),
		errors.Is(err, storage.ErrConcurrentModification),
		errors.Is(err, storage.ErrDuplicateExternalID),
		errors.Is(err, storage.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as a plain text error. action completes the sentence
// "Failed to ...".
func Error(w http.ResponseWriter, r *http.Request, action string, err error) {
	code := StatusCode(err)
	switch {
	case code == http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", RetryAfterSeconds)
		slog.WarnContext(r.Context(), "storage unavailable", "action", action, "error", err)
	case code >= http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), "request failed", "action", action, "error", err)
	}
	http.Error(w, fmt.Sprintf("Failed to %s: %v", action, err), code)
}
