package web

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// stubProvider returns a canned reply or error.
type stubProvider struct {
	name  string
	reply string
	err   error
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) GenerateResponse(ctx context.Context, prompt, traceID string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

// stubUserRepo is a minimal in-memory user store for handler tests.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]model.User)}
}

func (s *stubUserRepo) Save(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		cp := u
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubUserRepo) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	return nil
}
