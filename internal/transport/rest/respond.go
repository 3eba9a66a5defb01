package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/inbox-triage/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusForError maps a service error to an HTTP status plus a message
// safe to show the caller. Internal errors come back blank so handlers
// can log the real error and substitute a generic message.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrLinkExpired):
		return http.StatusForbidden, "link expired, request a fresh digest"
	case errors.Is(err, domain.ErrSignatureInvalid):
		return http.StatusForbidden, "invalid signature"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	default:
		return http.StatusInternalServerError, ""
	}
}

func handleError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error) {
	status, message := statusForError(err)
	if message == "" {
		log.ErrorContext(ctx, "internal error", slog.String("error", err.Error()))
		message = "internal server error"
	}
	writeError(w, status, message)
}
