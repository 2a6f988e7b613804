package testimonial

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const testimonialColumns = `id, customer_name, review_message, rating, status, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, customerName, reviewMessage string, rating int) (*Testimonial, error) {
	query := `
		INSERT INTO testimonials (id, customer_name, review_message, rating, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + testimonialColumns

	var t Testimonial
	err := r.db.GetContext(ctx, &t, query, uuid.New(), customerName, reviewMessage, rating, StatusPending)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// List returns testimonials newest first. An empty status lists every status.
func (r *PostgresRepository) List(ctx context.Context, status Status, limit, offset int) ([]Testimonial, error) {
	query := `
		SELECT ` + testimonialColumns + `
		FROM testimonials
	`
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		query += " WHERE status = $1"
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	items := []Testimonial{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Testimonial, error) {
	query := `
		UPDATE testimonials
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + testimonialColumns

	var t Testimonial
	if err := r.db.GetContext(ctx, &t, query, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &t, nil
}
