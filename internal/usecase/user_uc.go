// File: internal/usecase/user_uc.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	Register(ctx context.Context, email, fullName string, role model.UserRole) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]*model.User, int, error)
	Update(ctx context.Context, id string, fullName, phone string) (*model.User, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

func (u *userUC) Register(ctx context.Context, email, fullName string, role model.UserRole) (*model.User, error) {
	usr, err := model.NewUser("", email, fullName)
	if err != nil {
		return nil, err
	}
	if role != "" {
		usr.Role = role
	}

	if existing, err := u.users.FindByEmail(ctx, usr.Email); err == nil && !existing.IsZero() {
		return nil, domain.ErrAlreadyExists
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", usr.ID).Str("role", string(usr.Role)).Msg("user registered")
	return usr, nil
}

func (u *userUC) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.users.FindByID(ctx, id)
}

func (u *userUC) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.users.FindByEmail(ctx, email)
}

func (u *userUC) List(ctx context.Context, offset, limit int) ([]*model.User, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	users, err := u.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := u.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (u *userUC) Update(ctx context.Context, id string, fullName, phone string) (*model.User, error) {
	usr, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(fullName) != "" {
		usr.FullName = fullName
	}
	if phone != "" {
		usr.Phone = phone
	}
	usr.Touch()
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

func (u *userUC) Deactivate(ctx context.Context, id string) error {
	usr, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return nil
	}
	usr.IsActive = false
	usr.Touch()
	return u.users.Save(ctx, usr)
}

func (u *userUC) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	if err := u.users.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		u.log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return err
	}
	return nil
}
