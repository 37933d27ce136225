package model

import (
	"strings"
	"time"

	"fitcoach-ai-backend/internal/domain"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleClient       UserRole = "client"
	RoleTrainer      UserRole = "trainer"
	RoleNutritionist UserRole = "nutritionist"
	RoleAdmin        UserRole = "admin"
)

// User is a platform member: a coaching client by default.
type User struct {
	ID        string    `json:"id"` // UUID
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      UserRole  `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUser(id, email, fullName string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:        id,
		Email:     email,
		FullName:  fullName,
		Role:      RoleClient,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
func (u *User) Touch()       { u.UpdatedAt = time.Now() }
