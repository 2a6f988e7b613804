package mealplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MealPlan struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	Name        string          `db:"name" json:"name" example:"Diet Plan"`
	Price       decimal.Decimal `db:"price" json:"price" swaggertype:"string" example:"30000.00"`
	Description string          `db:"description" json:"description"`
	ImageURL    string          `db:"image_url" json:"image_url"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

type CreateMealPlanParams struct {
	Name        string          `yaml:"name"`
	Price       decimal.Decimal `yaml:"price"`
	Description string          `yaml:"description"`
	ImageURL    string          `yaml:"image_url"`
}
