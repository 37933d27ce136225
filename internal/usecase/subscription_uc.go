package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var _ SubscriptionUseCase = (*subscriptionUC)(nil)

type SubscriptionUseCase interface {
	Create(ctx context.Context, userID, planName string, amount int64, durationDays int) (*model.Subscription, error)
	Get(ctx context.Context, id string) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error)
	Cancel(ctx context.Context, id string) error
	// ExpireDue marks ended subscriptions expired. Run periodically.
	ExpireDue(ctx context.Context) (int, error)
}

type subscriptionUC struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository, users repository.UserRepository, logger *zerolog.Logger) *subscriptionUC {
	return &subscriptionUC{subs: subs, users: users, log: logger}
}

func (s *subscriptionUC) Create(ctx context.Context, userID, planName string, amount int64, durationDays int) (*model.Subscription, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if planName == "" || amount <= 0 || durationDays <= 0 {
		return nil, domain.ErrInvalidArgument
	}

	now := time.Now().UTC()
	sub := &model.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanName:  planName,
		Status:    model.SubscriptionStatusActive,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, durationDays),
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.subs.Save(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info().Str("subscription_id", sub.ID).Str("user_id", userID).Str("plan", planName).Msg("subscription created")
	return sub, nil
}

func (s *subscriptionUC) Get(ctx context.Context, id string) (*model.Subscription, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return s.subs.FindByID(ctx, id)
}

func (s *subscriptionUC) ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return s.subs.ListByUser(ctx, userID)
}

func (s *subscriptionUC) Cancel(ctx context.Context, id string) error {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sub.Status == model.SubscriptionStatusCancelled {
		return nil
	}
	return s.subs.UpdateStatus(ctx, id, model.SubscriptionStatusCancelled)
}

func (s *subscriptionUC) ExpireDue(ctx context.Context) (int, error) {
	n, err := s.subs.ExpireDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info().Int("count", n).Msg("subscriptions expired")
	}
	return n, nil
}
