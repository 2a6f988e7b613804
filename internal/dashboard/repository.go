package dashboard

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Aggregate computes every figure in one pass over subscriptions. A resumed
// subscription is active with version > 1, since leaving active bumps the version.
func (r *PostgresRepository) Aggregate(ctx context.Context, w Window, reactivatedSince time.Time) (*Metrics, error) {
	query := `
		SELECT
			COUNT(*) FILTER (
				WHERE ($1::timestamptz IS NULL OR created_at >= $1)
				  AND ($2::timestamptz IS NULL OR created_at < $2)
			) AS new_subscriptions,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'active'), 0) AS mrr,
			COUNT(*) FILTER (
				WHERE status = 'active' AND version > 1 AND updated_at >= $3
			) AS reactivations,
			COUNT(*) FILTER (WHERE status = 'active') AS total_active_subscriptions
		FROM subscriptions
	`

	var m Metrics
	if err := r.db.GetContext(ctx, &m, query, w.From, w.To, reactivatedSince); err != nil {
		return nil, err
	}

	return &m, nil
}
