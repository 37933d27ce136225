// File: internal/usecase/mock_test.go
package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/adapter"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
// It writes to io.Discard to prevent logs from cluttering test output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// --- Mock Order Repository

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]model.Order
	putErr error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]model.Order)}
}

func (m *memOrderRepo) Get(ctx context.Context, orderID string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := o
	return &cp, nil
}

func (m *memOrderRepo) Put(ctx context.Context, o *model.Order) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.OrderID] = *o
	return nil
}

func (m *memOrderRepo) CompareAndSwapStatus(ctx context.Context, orderID string, from, to model.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from || !from.CanAdvanceTo(to) {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	m.orders[orderID] = o
	return nil
}

// --- Mock Subscription Record Repository

type memSubRecordRepo struct {
	mu   sync.Mutex
	recs map[string]model.SubscriptionRecord
}

func newMemSubRecordRepo() *memSubRecordRepo {
	return &memSubRecordRepo{recs: make(map[string]model.SubscriptionRecord)}
}

func (m *memSubRecordRepo) Get(ctx context.Context, userID string) (*model.SubscriptionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (m *memSubRecordRepo) Put(ctx context.Context, rec *model.SubscriptionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.UserID] = *rec
	return nil
}

func (m *memSubRecordRepo) MarkCharged(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[userID]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	r.Active = true
	r.LastChargedAt = &now
	m.recs[userID] = r
	return nil
}

func (m *memSubRecordRepo) Deactivate(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[userID]
	if !ok {
		return domain.ErrNotFound
	}
	r.Active = false
	m.recs[userID] = r
	return nil
}

// --- Mock Payment Gateway

type mockGateway struct {
	createFunc func(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*adapter.GatewayOrder, error)
	calls      int
}

func (g *mockGateway) Name() string { return "mock" }

func (g *mockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]string) (*adapter.GatewayOrder, error) {
	g.calls++
	if g.createFunc != nil {
		return g.createFunc(ctx, amount, currency, receipt, notes)
	}
	return &adapter.GatewayOrder{ID: "order_gw_1", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

// --- Mock User Repository

type memUserRepo struct {
	mu      sync.Mutex
	users   map[string]model.User // by ID
	saveErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, u *model.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		cp := u
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (m *memUserRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func (m *memUserRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

// --- Mock Workout / Meal Repositories

type memWorkoutRepo struct {
	mu       sync.Mutex
	workouts map[string]model.Workout
}

func newMemWorkoutRepo() *memWorkoutRepo {
	return &memWorkoutRepo{workouts: make(map[string]model.Workout)}
}

func (m *memWorkoutRepo) Save(ctx context.Context, w *model.Workout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workouts[w.ID] = *w
	return nil
}

func (m *memWorkoutRepo) FindByID(ctx context.Context, id string) (*model.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workouts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := w
	return &cp, nil
}

func (m *memWorkoutRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Workout
	for _, w := range m.workouts {
		if w.UserID == userID {
			cp := w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memWorkoutRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workouts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.workouts, id)
	return nil
}

type memMealRepo struct {
	mu    sync.Mutex
	meals map[string]model.Meal
}

func newMemMealRepo() *memMealRepo {
	return &memMealRepo{meals: make(map[string]model.Meal)}
}

func (m *memMealRepo) Save(ctx context.Context, ml *model.Meal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meals[ml.ID] = *ml
	return nil
}

func (m *memMealRepo) FindByID(ctx context.Context, id string) (*model.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ml, ok := m.meals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := ml
	return &cp, nil
}

func (m *memMealRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Meal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Meal
	for _, ml := range m.meals {
		if ml.UserID == userID {
			cp := ml
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memMealRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.meals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.meals, id)
	return nil
}

// --- Mock AI Provider

type mockAIProvider struct {
	name       string
	reply      string
	err        error
	lastPrompt string
}

func (p *mockAIProvider) Name() string { return p.name }

func (p *mockAIProvider) GenerateResponse(ctx context.Context, prompt, traceID string) (string, error) {
	p.lastPrompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}
