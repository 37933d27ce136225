package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var _ repository.WorkoutRepository = (*PostgresWorkoutRepo)(nil)

type PostgresWorkoutRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresWorkoutRepo(pool *pgxpool.Pool) *PostgresWorkoutRepo {
	return &PostgresWorkoutRepo{pool: pool}
}

func (r *PostgresWorkoutRepo) Save(ctx context.Context, w *model.Workout) error {
	const q = `
INSERT INTO workouts (
  id, user_id, title, description, duration_minutes, calories_burned,
  completed_at, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9
) ON CONFLICT (id) DO UPDATE SET
  title=$3, description=$4, duration_minutes=$5, calories_burned=$6,
  completed_at=$7, updated_at=$9;
`
	_, err := r.pool.Exec(ctx, q, w.ID, w.UserID, w.Title, w.Description, w.DurationMinutes, w.CaloriesBurned, w.CompletedAt, w.CreatedAt, w.UpdatedAt)
	return translateErr(err)
}

func (r *PostgresWorkoutRepo) FindByID(ctx context.Context, id string) (*model.Workout, error) {
	const q = `
SELECT id, user_id, title, description, duration_minutes, calories_burned,
       completed_at, created_at, updated_at
  FROM workouts WHERE id=$1;`
	var w model.Workout
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&w.ID, &w.UserID, &w.Title, &w.Description, &w.DurationMinutes,
		&w.CaloriesBurned, &w.CompletedAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *PostgresWorkoutRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Workout, error) {
	const q = `
SELECT id, user_id, title, description, duration_minutes, calories_burned,
       completed_at, created_at, updated_at
  FROM workouts WHERE user_id=$1 ORDER BY completed_at DESC OFFSET $2 LIMIT $3;`
	rows, err := r.pool.Query(ctx, q, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Workout
	for rows.Next() {
		var w model.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Title, &w.Description, &w.DurationMinutes, &w.CaloriesBurned, &w.CompletedAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *PostgresWorkoutRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM workouts WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
