// Package memstore provides process-local stores for the payment flow.
// Contents are lost on restart; durable records live in Postgres.
package memstore

import (
	"context"
	"sync"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var _ repository.OrderRepository = (*OrderStore)(nil)

type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]model.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]model.Order)}
}

func (s *OrderStore) Get(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := o
	return &cp, nil
}

func (s *OrderStore) Put(ctx context.Context, o *model.Order) error {
	if o == nil || o.OrderID == "" {
		return domain.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.OrderID] = *o
	return nil
}

// CompareAndSwapStatus advances an order's status under the store lock.
// Forward-only: pending -> completed -> captured.
func (s *OrderStore) CompareAndSwapStatus(ctx context.Context, orderID string, from, to model.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.ErrInvalidTransition
	}
	if !from.CanAdvanceTo(to) {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	s.orders[orderID] = o
	return nil
}

// Len reports how many orders the store holds. Test helper.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
