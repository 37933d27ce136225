package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

// errorBody is the JSON envelope all failures share. UserMessage is safe
// to show verbatim in a client UI; Message is for operators.
type errorBody struct {
	Error       string `json:"error"`
	Message     string `json:"message"`
	UserMessage string `json:"user_message,omitempty"`
	TraceID     string `json:"trace_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message, userMessage, traceID string) {
	writeJSON(w, status, errorBody{Error: code, Message: message, UserMessage: userMessage, TraceID: traceID})
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error, traceID string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error(), "", traceID)
	case errors.Is(err, domain.ErrUnsupportedPlan):
		writeError(w, http.StatusBadRequest, "unsupported_plan", err.Error(), "", traceID)
	case errors.Is(err, domain.ErrUnsupportedProvider):
		writeError(w, http.StatusBadRequest, "unsupported_provider", err.Error(), "", traceID)
	case errors.Is(err, domain.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, "invalid_signature", "payment signature verification failed", "", traceID)
	case errors.Is(err, domain.ErrMissingSignature):
		writeError(w, http.StatusBadRequest, "missing_signature", "webhook signature header is required", "", traceID)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error(), "", traceID)
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already_exists", err.Error(), "", traceID)
	case errors.Is(err, domain.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "permission_denied", err.Error(), "", traceID)
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service_unavailable",
			err.Error(), "The payment service is temporarily unavailable. Please try again in a moment.", traceID)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error", "", traceID)
	}
}

// writeAIError renders provider failures with an empathetic message the
// client can show directly.
func writeAIError(w http.ResponseWriter, err error, traceID string) {
	aiErr, ok := adapter.AsError(err)
	if !ok {
		writeDomainError(w, err, traceID)
		return
	}
	if aiErr.TraceID != "" {
		traceID = aiErr.TraceID
	}
	const userMsg = "I'm having trouble responding right now. Please try again in a moment."
	switch aiErr.Kind {
	case adapter.KindRateLimited:
		writeError(w, http.StatusServiceUnavailable, string(aiErr.Kind), aiErr.Message, userMsg, traceID)
	case adapter.KindMissingCredential, adapter.KindEmptyResponse, adapter.KindProviderError, adapter.KindUnknownError:
		writeError(w, http.StatusServiceUnavailable, string(aiErr.Kind), aiErr.Message, userMsg, traceID)
	default:
		writeError(w, http.StatusServiceUnavailable, "provider_error", aiErr.Message, userMsg, traceID)
	}
}
