package usecase

import (
	"context"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var _ PaymentLedgerQuery = (*ledgerQuery)(nil)

// PaymentLedgerQuery reads the durable payment trail for the
// management API.
type PaymentLedgerQuery interface {
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Payment, error)
	TotalRevenue(ctx context.Context) (int64, error)
}

type ledgerQuery struct {
	ledger repository.PaymentRepository
}

func NewPaymentLedgerQuery(ledger repository.PaymentRepository) *ledgerQuery {
	return &ledgerQuery{ledger: ledger}
}

func (l *ledgerQuery) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Payment, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return l.ledger.ListByUser(ctx, userID, offset, limit)
}

func (l *ledgerQuery) TotalRevenue(ctx context.Context) (int64, error) {
	return l.ledger.SumCompleted(ctx)
}
