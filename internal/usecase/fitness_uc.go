package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var (
	_ WorkoutUseCase = (*workoutUC)(nil)
	_ MealUseCase    = (*mealUC)(nil)
)

type WorkoutUseCase interface {
	Log(ctx context.Context, userID, title, description string, durationMinutes int, caloriesBurned float64, completedAt time.Time) (*model.Workout, error)
	Get(ctx context.Context, id string) (*model.Workout, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Workout, error)
	Delete(ctx context.Context, id, requesterID string) error
}

type MealUseCase interface {
	Log(ctx context.Context, userID, mealName, description string, calories, protein, carbs, fat float64, consumedAt time.Time) (*model.Meal, error)
	Get(ctx context.Context, id string) (*model.Meal, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Meal, error)
	Delete(ctx context.Context, id, requesterID string) error
}

type workoutUC struct {
	workouts repository.WorkoutRepository
	users    repository.UserRepository
	log      *zerolog.Logger
}

func NewWorkoutUseCase(workouts repository.WorkoutRepository, users repository.UserRepository, logger *zerolog.Logger) *workoutUC {
	return &workoutUC{workouts: workouts, users: users, log: logger}
}

func (w *workoutUC) Log(ctx context.Context, userID, title, description string, durationMinutes int, caloriesBurned float64, completedAt time.Time) (*model.Workout, error) {
	if _, err := w.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	wk, err := model.NewWorkout(userID, title, durationMinutes, completedAt)
	if err != nil {
		return nil, err
	}
	wk.Description = description
	wk.CaloriesBurned = caloriesBurned
	if err := w.workouts.Save(ctx, wk); err != nil {
		return nil, err
	}
	return wk, nil
}

func (w *workoutUC) Get(ctx context.Context, id string) (*model.Workout, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return w.workouts.FindByID(ctx, id)
}

func (w *workoutUC) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Workout, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return w.workouts.ListByUser(ctx, userID, offset, limit)
}

// Delete removes a workout. Only its owner may delete it; requesterID
// is the authenticated caller.
func (w *workoutUC) Delete(ctx context.Context, id, requesterID string) error {
	wk, err := w.workouts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if requesterID != "" && wk.UserID != requesterID {
		return domain.ErrPermissionDenied
	}
	return w.workouts.Delete(ctx, id)
}

type mealUC struct {
	meals repository.MealRepository
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewMealUseCase(meals repository.MealRepository, users repository.UserRepository, logger *zerolog.Logger) *mealUC {
	return &mealUC{meals: meals, users: users, log: logger}
}

func (m *mealUC) Log(ctx context.Context, userID, mealName, description string, calories, protein, carbs, fat float64, consumedAt time.Time) (*model.Meal, error) {
	if _, err := m.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	ml, err := model.NewMeal(userID, mealName, calories, consumedAt)
	if err != nil {
		return nil, err
	}
	ml.Description = description
	ml.ProteinGrams = protein
	ml.CarbsGrams = carbs
	ml.FatGrams = fat
	if err := m.meals.Save(ctx, ml); err != nil {
		return nil, err
	}
	return ml, nil
}

func (m *mealUC) Get(ctx context.Context, id string) (*model.Meal, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return m.meals.FindByID(ctx, id)
}

func (m *mealUC) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Meal, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return m.meals.ListByUser(ctx, userID, offset, limit)
}

func (m *mealUC) Delete(ctx context.Context, id, requesterID string) error {
	ml, err := m.meals.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if requesterID != "" && ml.UserID != requesterID {
		return domain.ErrPermissionDenied
	}
	return m.meals.Delete(ctx, id)
}
