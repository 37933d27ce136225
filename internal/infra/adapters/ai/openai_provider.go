package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

// Compile-time assurance this provider satisfies the port
var _ adapter.AIProvider = (*OpenAIProvider)(nil)

// OpenAIProvider implements adapter.AIProvider using the Chat Completions API.
type OpenAIProvider struct {
	client openai.Client
	model  string
	log    *zerolog.Logger
}

func NewOpenAIProvider(apiKey, model string, logger *zerolog.Logger, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, missingCredential("openai")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
		log:    logger,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt, traceID string) (string, error) {
	start := time.Now()
	p.log.Info().
		Str("provider", p.Name()).
		Int("prompt_length", len(prompt)).
		Int("prompt_tokens", countTokens(p.model, prompt)).
		Str("trace_id", traceID).
		Msg("generating ai response")

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return "", p.classify(err, traceID)
	}

	var content string
	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			content = c.Message.Content
			break
		}
	}
	if strings.TrimSpace(content) == "" {
		return "", &adapter.Error{
			Kind:     adapter.KindEmptyResponse,
			Message:  "empty response from openai",
			Provider: p.Name(),
			TraceID:  traceID,
		}
	}

	p.log.Info().
		Str("provider", p.Name()).
		Int("response_length", len(content)).
		Dur("duration", time.Since(start)).
		Str("trace_id", traceID).
		Msg("ai response generated")
	return content, nil
}

func (p *OpenAIProvider) classify(err error, traceID string) error {
	p.log.Error().Err(err).Str("provider", p.Name()).Str("trace_id", traceID).Msg("ai call failed")

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		kind := adapter.KindProviderError
		if apierr.StatusCode == http.StatusTooManyRequests {
			kind = adapter.KindRateLimited
		}
		return &adapter.Error{Kind: kind, Message: err.Error(), Provider: p.Name(), TraceID: traceID}
	}
	return &adapter.Error{Kind: adapter.KindUnknownError, Message: err.Error(), Provider: p.Name(), TraceID: traceID}
}

// countTokens is best-effort: unknown models fall back to the cl100k_base
// encoding, and a failure there just reports zero.
func countTokens(model, prompt string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if enc, err = tiktoken.GetEncoding("cl100k_base"); err != nil {
			return 0
		}
	}
	return len(enc.Encode(prompt, nil, nil))
}
