package repository

import (
	"context"

	"fitcoach-ai-backend/internal/domain/model"
)

// -----------------------------
// Workouts
// -----------------------------

type WorkoutRepository interface {
	Save(ctx context.Context, w *model.Workout) error
	FindByID(ctx context.Context, id string) (*model.Workout, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Workout, error)
	Delete(ctx context.Context, id string) error
}

// -----------------------------
// Meals
// -----------------------------

type MealRepository interface {
	Save(ctx context.Context, m *model.Meal) error
	FindByID(ctx context.Context, id string) (*model.Meal, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Meal, error)
	Delete(ctx context.Context, id string) error
}
