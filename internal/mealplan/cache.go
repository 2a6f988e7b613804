package mealplan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rsydfhmy03/SEA-Catering/internal/metrics"
)

// CachedRepository serves FindByID from an expiring LRU. Misses and
// ErrNotFound go to the wrapped repository; only hits are cached.
type CachedRepository struct {
	Repository
	byID *expirable.LRU[uuid.UUID, MealPlan]
}

func NewCachedRepository(repo Repository, size int, ttl time.Duration) *CachedRepository {
	if size <= 0 {
		size = 128
	}
	return &CachedRepository{
		Repository: repo,
		byID:       expirable.NewLRU[uuid.UUID, MealPlan](size, nil, ttl),
	}
}

func (r *CachedRepository) FindByID(ctx context.Context, id uuid.UUID) (*MealPlan, error) {
	if plan, ok := r.byID.Get(id); ok {
		metrics.RecordCacheLookup(true)
		return &plan, nil
	}
	metrics.RecordCacheLookup(false)

	return r.Refresh(ctx, id)
}

// Refresh reads id from the wrapped repository, skipping the cache, and
// stores what it finds. A plan that no longer exists is evicted.
func (r *CachedRepository) Refresh(ctx context.Context, id uuid.UUID) (*MealPlan, error) {
	plan, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			r.byID.Remove(id)
		}
		return nil, err
	}

	r.byID.Add(id, *plan)
	return plan, nil
}

func (r *CachedRepository) Create(ctx context.Context, params CreateMealPlanParams) (*MealPlan, error) {
	plan, err := r.Repository.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	r.byID.Add(plan.ID, *plan)
	return plan, nil
}

func (r *CachedRepository) Len() int {
	return r.byID.Len()
}
