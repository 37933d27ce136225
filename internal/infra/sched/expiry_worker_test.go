package sched

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain/model"
)

type fakeSubUC struct {
	sweeps atomic.Int64
}

func (f *fakeSubUC) Create(ctx context.Context, userID, planName string, amount int64, durationDays int) (*model.Subscription, error) {
	return nil, nil
}
func (f *fakeSubUC) Get(ctx context.Context, id string) (*model.Subscription, error) { return nil, nil }
func (f *fakeSubUC) ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	return nil, nil
}
func (f *fakeSubUC) Cancel(ctx context.Context, id string) error { return nil }
func (f *fakeSubUC) ExpireDue(ctx context.Context) (int, error) {
	f.sweeps.Add(1)
	return 0, nil
}

func TestExpiryWorker_SweepsAndStops(t *testing.T) {
	logger := zerolog.New(io.Discard)
	uc := &fakeSubUC{}
	w := NewExpiryWorker(5*time.Millisecond, uc, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := w.Run(ctx)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got: %v", err)
	}
	if uc.sweeps.Load() == 0 {
		t.Error("expected at least one sweep before shutdown")
	}
}
