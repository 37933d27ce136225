package repository

import (
	"context"
	"time"

	"fitcoach-ai-backend/internal/domain/model"
)

// -----------------------------
// Payments (relational ledger)
// -----------------------------

type PaymentRepository interface {
	Save(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id string) (*model.Payment, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Payment, error)
	SumCompleted(ctx context.Context) (int64, error)
}

// -----------------------------
// Subscriptions (relational)
// -----------------------------

type SubscriptionRepository interface {
	Save(ctx context.Context, s *model.Subscription) error
	FindByID(ctx context.Context, id string) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error)
	UpdateStatus(ctx context.Context, id string, status model.SubscriptionStatus) error
	// ExpireDue flips active subscriptions whose end date has passed to
	// expired, returning how many rows changed.
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}
