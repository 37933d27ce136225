package model

import (
	"strings"
	"time"

	"fitcoach-ai-backend/internal/domain"

	"github.com/google/uuid"
)

// Meal is a nutrition entry logged by a user.
type Meal struct {
	ID           string    `json:"id"` // UUID
	UserID       string    `json:"user_id"`
	MealName     string    `json:"meal_name"`
	Description  string    `json:"description,omitempty"`
	Calories     float64   `json:"calories"`
	ProteinGrams float64   `json:"protein_grams,omitempty"`
	CarbsGrams   float64   `json:"carbs_grams,omitempty"`
	FatGrams     float64   `json:"fat_grams,omitempty"`
	ConsumedAt   time.Time `json:"consumed_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewMeal(userID, mealName string, calories float64, consumedAt time.Time) (*Meal, error) {
	if userID == "" || strings.TrimSpace(mealName) == "" {
		return nil, domain.ErrInvalidArgument
	}
	if calories < 0 {
		return nil, domain.ErrInvalidArgument
	}
	if consumedAt.IsZero() {
		consumedAt = time.Now()
	}
	now := time.Now()
	return &Meal{
		ID:         uuid.NewString(),
		UserID:     userID,
		MealName:   mealName,
		Calories:   calories,
		ConsumedAt: consumedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
