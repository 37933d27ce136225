package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var _ repository.MealRepository = (*PostgresMealRepo)(nil)

type PostgresMealRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMealRepo(pool *pgxpool.Pool) *PostgresMealRepo {
	return &PostgresMealRepo{pool: pool}
}

func (r *PostgresMealRepo) Save(ctx context.Context, m *model.Meal) error {
	const q = `
INSERT INTO meals (
  id, user_id, meal_name, description, calories, protein_grams, carbs_grams,
  fat_grams, consumed_at, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
) ON CONFLICT (id) DO UPDATE SET
  meal_name=$3, description=$4, calories=$5, protein_grams=$6,
  carbs_grams=$7, fat_grams=$8, consumed_at=$9, updated_at=$11;
`
	_, err := r.pool.Exec(ctx, q, m.ID, m.UserID, m.MealName, m.Description, m.Calories, m.ProteinGrams, m.CarbsGrams, m.FatGrams, m.ConsumedAt, m.CreatedAt, m.UpdatedAt)
	return translateErr(err)
}

func (r *PostgresMealRepo) FindByID(ctx context.Context, id string) (*model.Meal, error) {
	const q = `
SELECT id, user_id, meal_name, description, calories, protein_grams, carbs_grams,
       fat_grams, consumed_at, created_at, updated_at
  FROM meals WHERE id=$1;`
	var m model.Meal
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&m.ID, &m.UserID, &m.MealName, &m.Description, &m.Calories,
		&m.ProteinGrams, &m.CarbsGrams, &m.FatGrams, &m.ConsumedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *PostgresMealRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Meal, error) {
	const q = `
SELECT id, user_id, meal_name, description, calories, protein_grams, carbs_grams,
       fat_grams, consumed_at, created_at, updated_at
  FROM meals WHERE user_id=$1 ORDER BY consumed_at DESC OFFSET $2 LIMIT $3;`
	rows, err := r.pool.Query(ctx, q, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Meal
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.UserID, &m.MealName, &m.Description, &m.Calories, &m.ProteinGrams, &m.CarbsGrams, &m.FatGrams, &m.ConsumedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (r *PostgresMealRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM meals WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
