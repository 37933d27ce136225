// Package ai provides the hosted text-generation backends behind the
// adapter.AIProvider port.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

// NewProvider constructs the backend matching the discriminator.
// The discriminator is trimmed and lower-cased, so "OPENAI" and
// "  openai  " select the same implementation. Anything outside the
// known set fails closed with domain.ErrUnsupportedProvider.
func NewProvider(ctx context.Context, kind, apiKey, model string, logger *zerolog.Logger) (adapter.AIProvider, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "openai":
		return NewOpenAIProvider(apiKey, model, logger)
	case "google":
		return NewGoogleProvider(ctx, apiKey, model, logger)
	default:
		return nil, fmt.Errorf("%w: %q (supported: openai, google)", domain.ErrUnsupportedProvider, kind)
	}
}

func missingCredential(provider string) error {
	return &adapter.Error{
		Kind:     adapter.KindMissingCredential,
		Message:  provider + " api key is required",
		Provider: provider,
	}
}
