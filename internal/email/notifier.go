package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/subscription"
	"github.com/rsydfhmy03/SEA-Catering/internal/user"
)

type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Mailer is the subset of Service the notifier sends through.
type Mailer interface {
	SendSubscriptionCreated(ctx context.Context, to, name string, d SubscriptionDetails) error
	SendSubscriptionPaused(ctx context.Context, to, name string, d SubscriptionDetails) error
	SendSubscriptionResumed(ctx context.Context, to, name string, d SubscriptionDetails) error
	SendSubscriptionCancelled(ctx context.Context, to, name string, d SubscriptionDetails) error
}

// SubscriptionNotifier turns subscription events into queued emails for the owner.
type SubscriptionNotifier struct {
	mailer Mailer
	users  UserLookup
}

func NewSubscriptionNotifier(mailer Mailer, users UserLookup) *SubscriptionNotifier {
	return &SubscriptionNotifier{mailer: mailer, users: users}
}

func (n *SubscriptionNotifier) SubscriptionChanged(ctx context.Context, event subscription.Event, s *subscription.Subscription, planName string) error {
	owner, err := n.users.FindByID(ctx, s.UserID)
	if err != nil {
		return fmt.Errorf("look up subscription owner: %w", err)
	}

	d := SubscriptionDetails{
		PlanName:     planName,
		MealTypes:    s.MealTypes,
		DeliveryDays: s.DeliveryDays,
		TotalPrice:   s.TotalPrice.StringFixed(2),
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		PauseStart:   s.PauseStartDate,
		PauseEnd:     s.PauseEndDate,
	}

	switch event {
	case subscription.EventCreated:
		return n.mailer.SendSubscriptionCreated(ctx, owner.Email, owner.FullName, d)
	case subscription.EventPaused:
		return n.mailer.SendSubscriptionPaused(ctx, owner.Email, owner.FullName, d)
	case subscription.EventResumed:
		return n.mailer.SendSubscriptionResumed(ctx, owner.Email, owner.FullName, d)
	case subscription.EventCancelled:
		return n.mailer.SendSubscriptionCancelled(ctx, owner.Email, owner.FullName, d)
	default:
		return fmt.Errorf("unknown subscription event %q", event)
	}
}
