package repository

import (
	"context"

	"fitcoach-ai-backend/internal/domain/model"
)

// -----------------------------
// Payment-flow stores
// -----------------------------

// OrderRepository keys orders by their gateway order id. Implementations
// back the payment flow only; the relational payments table is separate.
type OrderRepository interface {
	Get(ctx context.Context, orderID string) (*model.Order, error)
	Put(ctx context.Context, o *model.Order) error
	// CompareAndSwapStatus advances the order's status only when the stored
	// status matches `from` and the move is forward in the lifecycle.
	// Returns domain.ErrOrderNotFound for unknown ids and
	// domain.ErrInvalidTransition for backward moves.
	CompareAndSwapStatus(ctx context.Context, orderID string, from, to model.OrderStatus) error
}

// SubscriptionRecordRepository keys entitlement records by user id.
type SubscriptionRecordRepository interface {
	Get(ctx context.Context, userID string) (*model.SubscriptionRecord, error)
	Put(ctx context.Context, rec *model.SubscriptionRecord) error
	// MarkCharged sets active=true and stamps last_charged_at for an
	// existing record; unknown users are a no-op returning ErrNotFound.
	MarkCharged(ctx context.Context, userID string) error
	// Deactivate flips active=false for an existing record.
	Deactivate(ctx context.Context, userID string) error
}
