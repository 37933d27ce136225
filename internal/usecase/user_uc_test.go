package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/usecase"
)

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should register a client with normalized email", func(t *testing.T) {
		repo := newMemUserRepo()
		uc := usecase.NewUserUseCase(repo, newTestLogger())

		u, err := uc.Register(ctx, "  Jamie@Example.COM ", "Jamie Lee", "")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if u.Email != "jamie@example.com" {
			t.Errorf("expected lowercased email, got %q", u.Email)
		}
		if u.Role != model.RoleClient {
			t.Errorf("expected default role client, got %q", u.Role)
		}
		if !u.IsActive {
			t.Error("expected a new user to be active")
		}
	})

	t.Run("should honor an explicit role", func(t *testing.T) {
		repo := newMemUserRepo()
		uc := usecase.NewUserUseCase(repo, newTestLogger())

		u, err := uc.Register(ctx, "coach@example.com", "Coach", model.RoleTrainer)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if u.Role != model.RoleTrainer {
			t.Errorf("expected role trainer, got %q", u.Role)
		}
	})

	t.Run("should reject a duplicate email", func(t *testing.T) {
		repo := newMemUserRepo()
		uc := usecase.NewUserUseCase(repo, newTestLogger())

		if _, err := uc.Register(ctx, "dup@example.com", "First", ""); err != nil {
			t.Fatalf("seed register failed: %v", err)
		}
		_, err := uc.Register(ctx, "dup@example.com", "Second", "")
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got: %v", err)
		}
	})

	t.Run("should reject a malformed email", func(t *testing.T) {
		uc := usecase.NewUserUseCase(newMemUserRepo(), newTestLogger())

		if _, err := uc.Register(ctx, "not-an-email", "Name", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got: %v", err)
		}
	})
}

func TestUserUseCase_UpdateAndDeactivate(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*memUserRepo, usecase.UserUseCase, *model.User) {
		t.Helper()
		repo := newMemUserRepo()
		uc := usecase.NewUserUseCase(repo, newTestLogger())
		u, err := uc.Register(ctx, "a@example.com", "Alex", "")
		if err != nil {
			t.Fatalf("seed register failed: %v", err)
		}
		return repo, uc, u
	}

	t.Run("should update name and phone", func(t *testing.T) {
		_, uc, u := seed(t)

		before := u.UpdatedAt
		time.Sleep(time.Millisecond)
		got, err := uc.Update(ctx, u.ID, "Alex Morgan", "+1555000")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got.FullName != "Alex Morgan" || got.Phone != "+1555000" {
			t.Errorf("unexpected update result: %+v", got)
		}
		if !got.UpdatedAt.After(before) {
			t.Error("expected updated_at to move forward")
		}
	})

	t.Run("should deactivate idempotently", func(t *testing.T) {
		repo, uc, u := seed(t)

		if err := uc.Deactivate(ctx, u.ID); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if err := uc.Deactivate(ctx, u.ID); err != nil {
			t.Fatalf("second deactivate must be a no-op, got: %v", err)
		}
		got, _ := repo.FindByID(ctx, u.ID)
		if got.IsActive {
			t.Error("expected the user to be inactive")
		}
	})

	t.Run("should surface not found on delete", func(t *testing.T) {
		uc := usecase.NewUserUseCase(newMemUserRepo(), newTestLogger())

		if err := uc.Delete(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestUserUseCase_List(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo, newTestLogger())

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if _, err := uc.Register(ctx, email, "User "+email, ""); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	users, total, err := uc.List(ctx, 0, 2)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users in the page, got %d", len(users))
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
}
