package model

import (
	"strings"
	"time"

	"fitcoach-ai-backend/internal/domain"

	"github.com/google/uuid"
)

// Workout is a completed training session logged by a user.
type Workout struct {
	ID              string    `json:"id"` // UUID
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned,omitempty"`
	CompletedAt     time.Time `json:"completed_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewWorkout(userID, title string, durationMinutes int, completedAt time.Time) (*Workout, error) {
	if userID == "" || strings.TrimSpace(title) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if durationMinutes <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	now := time.Now()
	return &Workout{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		DurationMinutes: durationMinutes,
		CompletedAt:     completedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
