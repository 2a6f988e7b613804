package email

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	TypeWelcome               = "welcome"
	TypeSubscriptionCreated   = "subscription_created"
	TypeSubscriptionPaused    = "subscription_paused"
	TypeSubscriptionResumed   = "subscription_resumed"
	TypeSubscriptionCancelled = "subscription_cancelled"
)

const signature = "\n\n- SEA Catering Team"

// SubscriptionDetails is what the subscription emails print.
type SubscriptionDetails struct {
	PlanName     string
	MealTypes    []string
	DeliveryDays []string
	TotalPrice   string
	StartDate    time.Time
	EndDate      time.Time
	PauseStart   *time.Time
	PauseEnd     *time.Time
}

func formatDay(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func (d SubscriptionDetails) summary() string {
	var b strings.Builder
	if d.PlanName != "" {
		fmt.Fprintf(&b, "Plan: %s\n", d.PlanName)
	}
	fmt.Fprintf(&b, "Meals: %s\n", strings.Join(d.MealTypes, ", "))
	fmt.Fprintf(&b, "Delivery days: %s\n", strings.Join(d.DeliveryDays, ", "))
	fmt.Fprintf(&b, "Monthly price: Rp%s\n", d.TotalPrice)
	fmt.Fprintf(&b, "Period: %s - %s", formatDay(d.StartDate), formatDay(d.EndDate))
	return b.String()
}

func (s *Service) SendWelcome(ctx context.Context, to, name string) error {
	body := fmt.Sprintf(`Hi %s,

Welcome to SEA Catering! Browse our meal plans and start a subscription whenever you are ready.`, name) + signature

	return s.Send(ctx, TypeWelcome, to, name, "Welcome to SEA Catering", body)
}

func (s *Service) SendSubscriptionCreated(ctx context.Context, to, name string, d SubscriptionDetails) error {
	body := fmt.Sprintf(`Hi %s,

Your subscription is active!

%s`, name, d.summary()) + signature

	return s.Send(ctx, TypeSubscriptionCreated, to, name, "Subscription Confirmed", body)
}

func (s *Service) SendSubscriptionPaused(ctx context.Context, to, name string, d SubscriptionDetails) error {
	window := ""
	if d.PauseStart != nil && d.PauseEnd != nil {
		window = fmt.Sprintf("\nDeliveries are paused from %s and resume on %s.", formatDay(*d.PauseStart), formatDay(*d.PauseEnd))
	}
	body := fmt.Sprintf(`Hi %s,

Your subscription has been paused.%s

%s`, name, window, d.summary()) + signature

	return s.Send(ctx, TypeSubscriptionPaused, to, name, "Subscription Paused", body)
}

func (s *Service) SendSubscriptionResumed(ctx context.Context, to, name string, d SubscriptionDetails) error {
	body := fmt.Sprintf(`Hi %s,

Your subscription is active again and deliveries will continue.

%s`, name, d.summary()) + signature

	return s.Send(ctx, TypeSubscriptionResumed, to, name, "Subscription Resumed", body)
}

func (s *Service) SendSubscriptionCancelled(ctx context.Context, to, name string, d SubscriptionDetails) error {
	body := fmt.Sprintf(`Hi %s,

Your subscription has been cancelled. We hope to cook for you again soon.

%s`, name, d.summary()) + signature

	return s.Send(ctx, TypeSubscriptionCancelled, to, name, "Subscription Cancelled", body)
}
