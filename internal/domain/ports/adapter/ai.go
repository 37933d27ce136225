package adapter

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies AI provider failures for the HTTP layer.
type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindEmptyResponse     ErrorKind = "empty_response"
	KindRateLimited       ErrorKind = "rate_limited"
	KindProviderError     ErrorKind = "provider_error"
	KindUnknownError      ErrorKind = "unknown_error"
)

// Error carries the provider name and trace id so a failed call can be
// correlated with its request log line.
type Error struct {
	Kind     ErrorKind
	Message  string
	Provider string
	TraceID  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (provider=%s trace_id=%s)", e.Kind, e.Message, e.Provider, e.TraceID)
}

// AsError unwraps an *Error from err, if present.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// AIProvider is the port for hosted text-generation backends.
type AIProvider interface {
	Name() string
	// GenerateResponse returns the model's text for a single prompt.
	// Failures are always *Error values.
	GenerateResponse(ctx context.Context, prompt, traceID string) (string, error)
}
