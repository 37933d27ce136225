package memstore

import (
	"context"
	"sync"
	"time"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var _ repository.SubscriptionRecordRepository = (*SubscriptionStore)(nil)

type SubscriptionStore struct {
	mu      sync.RWMutex
	records map[string]model.SubscriptionRecord
}

func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{records: make(map[string]model.SubscriptionRecord)}
}

func (s *SubscriptionStore) Get(ctx context.Context, userID string) (*model.SubscriptionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := rec
	return &cp, nil
}

func (s *SubscriptionStore) Put(ctx context.Context, rec *model.SubscriptionRecord) error {
	if rec == nil || rec.UserID == "" {
		return domain.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserID] = *rec
	return nil
}

func (s *SubscriptionStore) MarkCharged(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now().UTC()
	rec.Active = true
	rec.LastChargedAt = &now
	s.records[userID] = rec
	return nil
}

func (s *SubscriptionStore) Deactivate(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Active = false
	s.records[userID] = rec
	return nil
}
