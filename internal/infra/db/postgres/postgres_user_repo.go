package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) Save(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (
  id, email, full_name, role, phone, is_active, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
) ON CONFLICT (id) DO UPDATE SET
  email=$2, full_name=$3, role=$4, phone=$5, is_active=$6, updated_at=$8;
`
	_, err := r.pool.Exec(ctx, q, u.ID, u.Email, u.FullName, u.Role, u.Phone, u.IsActive, u.CreatedAt, u.UpdatedAt)
	return translateErr(err)
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
SELECT id, email, full_name, role, phone, is_active, created_at, updated_at
  FROM users WHERE id=$1;`
	return r.scanOne(r.pool.QueryRow(ctx, q, id))
}

func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
SELECT id, email, full_name, role, phone, is_active, created_at, updated_at
  FROM users WHERE email=$1;`
	return r.scanOne(r.pool.QueryRow(ctx, q, email))
}

func (r *PostgresUserRepo) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	const q = `
SELECT id, email, full_name, role, phone, is_active, created_at, updated_at
  FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2;`
	rows, err := r.pool.Query(ctx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *PostgresUserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepo) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
