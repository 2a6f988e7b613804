package subscription

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const subscriptionColumns = `id, user_id, plan_id, meal_types, delivery_days, allergies, phone_number,
	total_price, status, start_date, end_date, pause_start_date, pause_end_date,
	version, created_at, updated_at`

const subscriptionWithPlanColumns = `s.id, s.user_id, s.plan_id, s.meal_types, s.delivery_days, s.allergies,
	s.phone_number, s.total_price, s.status, s.start_date, s.end_date, s.pause_start_date,
	s.pause_end_date, s.version, s.created_at, s.updated_at, mp.name AS plan_name`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *Subscription) (*Subscription, error) {
	query := `
		INSERT INTO subscriptions (id, user_id, plan_id, meal_types, delivery_days, allergies,
			phone_number, total_price, status, start_date, end_date, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		RETURNING ` + subscriptionColumns

	var created Subscription
	err := r.db.GetContext(ctx, &created, query,
		s.ID, s.UserID, s.PlanID, s.MealTypes, s.DeliveryDays, s.Allergies,
		s.PhoneNumber, s.TotalPrice, s.Status, s.StartDate, s.EndDate,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// FindByID loads a subscription with its plan name. The plan of a
// subscription never changes, so callers reuse the name across transitions.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionWithPlan, error) {
	query := `
		SELECT ` + subscriptionWithPlanColumns + `
		FROM subscriptions s
		JOIN meal_plans mp ON mp.id = s.plan_id
		WHERE s.id = $1
	`

	var s SubscriptionWithPlan
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *PostgresRepository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status Status) ([]SubscriptionWithPlan, error) {
	query := `
		SELECT ` + subscriptionWithPlanColumns + `
		FROM subscriptions s
		JOIN meal_plans mp ON mp.id = s.plan_id
		WHERE s.user_id = $1 AND s.status = $2
		ORDER BY s.created_at DESC
	`

	items := []SubscriptionWithPlan{}
	if err := r.db.SelectContext(ctx, &items, query, userID, status); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context, f Filter) ([]SubscriptionWithPlan, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	next := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Status != "" {
		where += " AND s.status = " + next(f.Status)
	}
	if f.From != nil {
		where += " AND s.created_at >= " + next(*f.From)
	}
	if f.To != nil {
		where += " AND s.created_at < " + next(*f.To)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM subscriptions s` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + subscriptionWithPlanColumns + `
		FROM subscriptions s
		JOIN meal_plans mp ON mp.id = s.plan_id` + where + `
		ORDER BY s.created_at DESC
		LIMIT ` + next(f.Limit) + ` OFFSET ` + next(f.Offset)

	items := []SubscriptionWithPlan{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) UpdateState(ctx context.Context, id uuid.UUID, expectedVersion int, change StateChange) (*Subscription, error) {
	query := `
		UPDATE subscriptions
		SET status = $3,
			pause_start_date = $4,
			pause_end_date = $5,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING ` + subscriptionColumns

	var s Subscription
	err := r.db.GetContext(ctx, &s, query, id, expectedVersion, change.Status, change.PauseStartDate, change.PauseEndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	return &s, nil
}

func (r *PostgresRepository) ListPausedDue(ctx context.Context, day time.Time) ([]SubscriptionWithPlan, error) {
	query := `
		SELECT ` + subscriptionWithPlanColumns + `
		FROM subscriptions s
		JOIN meal_plans mp ON mp.id = s.plan_id
		WHERE s.status = 'paused' AND s.pause_end_date <= $1
		ORDER BY s.pause_end_date ASC
	`

	items := []SubscriptionWithPlan{}
	if err := r.db.SelectContext(ctx, &items, query, day); err != nil {
		return nil, err
	}

	return items, nil
}
