package mealplan

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("meal plan not found")

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MealPlan, error)
	ListActive(ctx context.Context) ([]MealPlan, error)
	Create(ctx context.Context, params CreateMealPlanParams) (*MealPlan, error)
	FindByName(ctx context.Context, name string) (*MealPlan, error)
}
