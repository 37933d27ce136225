package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fitcoach-ai-backend/internal/domain"
	"fitcoach-ai-backend/internal/domain/model"
	"fitcoach-ai-backend/internal/domain/ports/repository"
)

var (
	_ repository.PaymentRepository      = (*PostgresPaymentRepo)(nil)
	_ repository.SubscriptionRepository = (*PostgresSubscriptionRepo)(nil)
)

type PostgresPaymentRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPaymentRepo(pool *pgxpool.Pool) *PostgresPaymentRepo {
	return &PostgresPaymentRepo{pool: pool}
}

func (r *PostgresPaymentRepo) Save(ctx context.Context, p *model.Payment) error {
	const q = `
INSERT INTO payments (
  id, user_id, order_id, payment_id, amount, currency, plan, status,
  created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
) ON CONFLICT (id) DO UPDATE SET
  status=$8, updated_at=$10;
`
	_, err := r.pool.Exec(ctx, q, p.ID, p.UserID, p.OrderID, p.PaymentID, p.Amount, p.Currency, p.Plan, p.Status, p.CreatedAt, p.UpdatedAt)
	return translateErr(err)
}

func (r *PostgresPaymentRepo) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	const q = `
SELECT id, user_id, order_id, payment_id, amount, currency, plan, status,
       created_at, updated_at
  FROM payments WHERE id=$1;`
	var p model.Payment
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.UserID, &p.OrderID, &p.PaymentID, &p.Amount, &p.Currency,
		&p.Plan, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresPaymentRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Payment, error) {
	const q = `
SELECT id, user_id, order_id, payment_id, amount, currency, plan, status,
       created_at, updated_at
  FROM payments WHERE user_id=$1 ORDER BY created_at DESC OFFSET $2 LIMIT $3;`
	rows, err := r.pool.Query(ctx, q, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.OrderID, &p.PaymentID, &p.Amount, &p.Currency, &p.Plan, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PostgresPaymentRepo) SumCompleted(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status='completed';`).Scan(&total)
	return total, err
}

type PostgresSubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSubscriptionRepo(pool *pgxpool.Pool) *PostgresSubscriptionRepo {
	return &PostgresSubscriptionRepo{pool: pool}
}

func (r *PostgresSubscriptionRepo) Save(ctx context.Context, s *model.Subscription) error {
	const q = `
INSERT INTO subscriptions (
  id, user_id, plan_name, status, start_date, end_date, amount,
  created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9
) ON CONFLICT (id) DO UPDATE SET
  plan_name=$3, status=$4, start_date=$5, end_date=$6, amount=$7, updated_at=$9;
`
	_, err := r.pool.Exec(ctx, q, s.ID, s.UserID, s.PlanName, s.Status, s.StartDate, s.EndDate, s.Amount, s.CreatedAt, s.UpdatedAt)
	return translateErr(err)
}

func (r *PostgresSubscriptionRepo) FindByID(ctx context.Context, id string) (*model.Subscription, error) {
	const q = `
SELECT id, user_id, plan_name, status, start_date, end_date, amount,
       created_at, updated_at
  FROM subscriptions WHERE id=$1;`
	var s model.Subscription
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&s.ID, &s.UserID, &s.PlanName, &s.Status, &s.StartDate, &s.EndDate,
		&s.Amount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PostgresSubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]*model.Subscription, error) {
	const q = `
SELECT id, user_id, plan_name, status, start_date, end_date, amount,
       created_at, updated_at
  FROM subscriptions WHERE user_id=$1 ORDER BY created_at DESC;`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Subscription
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlanName, &s.Status, &s.StartDate, &s.EndDate, &s.Amount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSubscriptionRepo) UpdateStatus(ctx context.Context, id string, status model.SubscriptionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET status=$2, updated_at=NOW() WHERE id=$1;`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresSubscriptionRepo) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET status='expired', updated_at=NOW()
		  WHERE status='active' AND end_date < $1;`, now)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
