package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/infra/metrics"
	"fitcoach-ai-backend/internal/usecase"
)

// ExpiryWorker sweeps lapsed subscriptions on a fixed interval. The first
// sweep runs immediately so a restart does not delay expiry by a full tick.
type ExpiryWorker struct {
	interval time.Duration
	subUC    usecase.SubscriptionUseCase
	log      *zerolog.Logger
}

func NewExpiryWorker(interval time.Duration, subUC usecase.SubscriptionUseCase, logger *zerolog.Logger) *ExpiryWorker {
	l := logger.With().Str("component", "ExpiryWorker").Logger()
	return &ExpiryWorker{interval: interval, subUC: subUC, log: &l}
}

func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("expiry worker started")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("expiry worker stopped")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	start := time.Now()
	n, err := w.subUC.ExpireDue(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("expiry sweep failed")
		return
	}
	if n > 0 {
		metrics.IncSubscriptionsExpired(n)
		w.log.Info().Int("expired", n).Dur("took", time.Since(start)).Msg("subscriptions expired")
	}
}
