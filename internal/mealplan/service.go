package mealplan

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
)

type Service interface {
	ListActive(ctx context.Context) ([]MealPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MealPlan, error)
	FindActive(ctx context.Context, id uuid.UUID) (*MealPlan, error)
}

// refresher is implemented by repositories that cache FindByID.
type refresher interface {
	Refresh(ctx context.Context, id uuid.UUID) (*MealPlan, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) ListActive(ctx context.Context) ([]MealPlan, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MealPlan, error) {
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Meal plan not found.")
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, apperr.New(apperr.KindNotFound, "Meal plan not found.")
	}
	return plan, nil
}

// FindActive resolves a plan for a new subscription. Missing and inactive
// plans both report KindPlanNotFound. It reads past any cache so a plan
// deactivated in the database stops being sold at once.
func (s *service) FindActive(ctx context.Context, id uuid.UUID) (*MealPlan, error) {
	find := s.repo.FindByID
	if r, ok := s.repo.(refresher); ok {
		find = r.Refresh
	}

	plan, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, planNotFound()
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, planNotFound()
	}
	return plan, nil
}

func planNotFound() *apperr.Error {
	return &apperr.Error{
		Kind:    apperr.KindPlanNotFound,
		Message: "Meal plan not found.",
		Fields:  []apperr.FieldError{apperr.Field("plan_id", "Selected meal plan does not exist or is unavailable.")},
	}
}
