package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("subscription not found")
	ErrVersionConflict = errors.New("subscription was modified concurrently")
)

type Repository interface {
	Create(ctx context.Context, s *Subscription) (*Subscription, error)
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionWithPlan, error)
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status Status) ([]SubscriptionWithPlan, error)
	ListAll(ctx context.Context, f Filter) ([]SubscriptionWithPlan, int, error)
	// UpdateState applies change only if the stored version equals
	// expectedVersion, and returns ErrVersionConflict otherwise.
	UpdateState(ctx context.Context, id uuid.UUID, expectedVersion int, change StateChange) (*Subscription, error)
	ListPausedDue(ctx context.Context, day time.Time) ([]SubscriptionWithPlan, error)
}
