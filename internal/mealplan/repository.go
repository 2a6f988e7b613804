package mealplan

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const mealPlanColumns = `id, name, price, description, image_url, is_active, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*MealPlan, error) {
	query := `
		SELECT ` + mealPlanColumns + `
		FROM meal_plans
		WHERE id = $1
	`

	var plan MealPlan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &plan, nil
}

func (r *PostgresRepository) FindByName(ctx context.Context, name string) (*MealPlan, error) {
	query := `
		SELECT ` + mealPlanColumns + `
		FROM meal_plans
		WHERE name = $1
	`

	var plan MealPlan
	if err := r.db.GetContext(ctx, &plan, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &plan, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]MealPlan, error) {
	query := `
		SELECT ` + mealPlanColumns + `
		FROM meal_plans
		WHERE is_active = TRUE
		ORDER BY price ASC
	`

	plans := []MealPlan{}
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *PostgresRepository) Create(ctx context.Context, params CreateMealPlanParams) (*MealPlan, error) {
	query := `
		INSERT INTO meal_plans (id, name, price, description, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING ` + mealPlanColumns

	var plan MealPlan
	err := r.db.GetContext(ctx, &plan, query,
		uuid.New(), params.Name, params.Price, params.Description, params.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	return &plan, nil
}
