package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

var _ adapter.AIProvider = (*GoogleProvider)(nil)

// GoogleProvider implements adapter.AIProvider using the Gemini SDK.
type GoogleProvider struct {
	client *genai.Client
	model  string
	log    *zerolog.Logger
}

func NewGoogleProvider(ctx context.Context, apiKey, model string, logger *zerolog.Logger) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, missingCredential("google")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GoogleProvider{client: c, model: model, log: logger}, nil
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) GenerateResponse(ctx context.Context, prompt, traceID string) (string, error) {
	start := time.Now()
	p.log.Info().
		Str("provider", p.Name()).
		Int("prompt_length", len(prompt)).
		Str("trace_id", traceID).
		Msg("generating ai response")

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", p.classify(err, traceID)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &adapter.Error{
			Kind:     adapter.KindEmptyResponse,
			Message:  "empty response from google ai",
			Provider: p.Name(),
			TraceID:  traceID,
		}
	}

	p.log.Info().
		Str("provider", p.Name()).
		Int("response_length", len(text)).
		Dur("duration", time.Since(start)).
		Str("trace_id", traceID).
		Msg("ai response generated")
	return text, nil
}

func (p *GoogleProvider) classify(err error, traceID string) error {
	p.log.Error().Err(err).Str("provider", p.Name()).Str("trace_id", traceID).Msg("ai call failed")

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		kind := adapter.KindProviderError
		if apiErr.Code == http.StatusTooManyRequests {
			kind = adapter.KindRateLimited
		}
		return &adapter.Error{Kind: kind, Message: err.Error(), Provider: p.Name(), TraceID: traceID}
	}
	return &adapter.Error{Kind: adapter.KindUnknownError, Message: err.Error(), Provider: p.Name(), TraceID: traceID}
}
