package ai

import (
	"context"

	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.AIProvider = (*limitedProvider)(nil)

type limitedProvider struct {
	inner adapter.AIProvider
	sem   chan struct{}
}

// NewLimitedProvider bounds the number of in-flight calls to the backend.
func NewLimitedProvider(inner adapter.AIProvider, maxConcurrent int) adapter.AIProvider {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedProvider{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedProvider) Name() string { return l.inner.Name() }

func (l *limitedProvider) GenerateResponse(ctx context.Context, prompt, traceID string) (string, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-l.sem }()
	return l.inner.GenerateResponse(ctx, prompt, traceID)
}
