package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
	"github.com/rsydfhmy03/SEA-Catering/internal/mealplan"
	"github.com/rsydfhmy03/SEA-Catering/internal/metrics"
	"github.com/rsydfhmy03/SEA-Catering/internal/pricing"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PlanCatalog resolves the plan a new subscription is priced from.
type PlanCatalog interface {
	FindActive(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error)
}

type Event string

const (
	EventCreated   Event = "created"
	EventPaused    Event = "paused"
	EventResumed   Event = "resumed"
	EventCancelled Event = "cancelled"
)

// Notifier is told about committed changes. Failures are logged by the
// caller and never undo the change.
type Notifier interface {
	SubscriptionChanged(ctx context.Context, event Event, s *Subscription, planName string) error
}

type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (*Response, error)
	Pause(ctx context.Context, id, callerID uuid.UUID, req PauseRequest) (*Response, error)
	Resume(ctx context.Context, id, callerID uuid.UUID) (*Response, error)
	Cancel(ctx context.Context, id, callerID uuid.UUID) (*Response, error)
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]Response, error)
	ListPausedForUser(ctx context.Context, userID uuid.UUID) ([]Response, error)
	ListAll(ctx context.Context, q ListQuery) (*Page, error)
	ResumeDue(ctx context.Context, now time.Time) (int, error)
}

type service struct {
	repo     Repository
	plans    PlanCatalog
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, plans PlanCatalog, notifier Notifier) Service {
	return &service{
		repo:     repo,
		plans:    plans,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (*Response, error) {
	planID, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.FindActive(ctx, planID)
	if err != nil {
		return nil, err
	}

	start := dateOf(s.now())
	sub := &Subscription{
		ID:           uuid.New(),
		UserID:       ownerID,
		PlanID:       plan.ID,
		MealTypes:    req.MealTypes,
		DeliveryDays: req.DeliveryDays,
		Allergies:    normalizeAllergies(req.Allergies),
		PhoneNumber:  req.PhoneNumber,
		TotalPrice:   pricing.ComputeTotalPrice(plan.Price, len(req.MealTypes), len(req.DeliveryDays)),
		Status:       StatusActive,
		StartDate:    start,
		EndDate:      addMonthClamped(start),
	}

	created, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionCreated(plan.Name)
	logger.Info("subscription created",
		"subscription_id", created.ID,
		"user_id", ownerID,
		"plan", plan.Name,
		"total_price", created.TotalPrice.String(),
	)
	s.notify(ctx, EventCreated, created, plan.Name)

	resp := NewResponse(created, plan.Name)
	return &resp, nil
}

func (s *service) Pause(ctx context.Context, id, callerID uuid.UUID, req PauseRequest) (*Response, error) {
	start, end, err := parsePauseWindow(req)
	if err != nil {
		return nil, err
	}

	sub, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if !end.After(start) {
		return nil, &apperr.Error{
			Kind:    apperr.KindInvalidDateRange,
			Message: "End date must be after start date.",
			Fields:  []apperr.FieldError{apperr.Field("pause_end_date", "End date must be after start date.")},
		}
	}

	updated, err := s.transition(ctx, &sub.Subscription, StateChange{
		Status:         StatusPaused,
		PauseStartDate: &start,
		PauseEndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, EventPaused, updated, sub.PlanName)
	resp := NewResponse(updated, sub.PlanName)
	return &resp, nil
}

func (s *service) Resume(ctx context.Context, id, callerID uuid.UUID) (*Response, error) {
	sub, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.transition(ctx, &sub.Subscription, StateChange{Status: StatusActive})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, EventResumed, updated, sub.PlanName)
	resp := NewResponse(updated, sub.PlanName)
	return &resp, nil
}

// Cancel is idempotent: cancelling a cancelled subscription returns it
// unchanged without writing.
func (s *service) Cancel(ctx context.Context, id, callerID uuid.UUID) (*Response, error) {
	sub, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if sub.Status == StatusCancelled {
		resp := NewResponse(&sub.Subscription, sub.PlanName)
		return &resp, nil
	}

	updated, err := s.transition(ctx, &sub.Subscription, StateChange{
		Status:         StatusCancelled,
		PauseStartDate: sub.PauseStartDate,
		PauseEndDate:   sub.PauseEndDate,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, EventCancelled, updated, sub.PlanName)
	resp := NewResponse(updated, sub.PlanName)
	return &resp, nil
}

func (s *service) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]Response, error) {
	items, err := s.repo.ListByUserAndStatus(ctx, userID, StatusActive)
	if err != nil {
		return nil, err
	}
	return NewResponses(items), nil
}

func (s *service) ListPausedForUser(ctx context.Context, userID uuid.UUID) ([]Response, error) {
	items, err := s.repo.ListByUserAndStatus(ctx, userID, StatusPaused)
	if err != nil {
		return nil, err
	}
	return NewResponses(items), nil
}

func (s *service) ListAll(ctx context.Context, q ListQuery) (*Page, error) {
	f, err := filterFromQuery(q)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:  NewResponses(items),
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	}, nil
}

// ResumeDue reactivates paused subscriptions whose pause window ended on or
// before now. A subscription changed concurrently is skipped.
func (s *service) ResumeDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.ListPausedDue(ctx, dateOf(now))
	if err != nil {
		return 0, err
	}

	resumed := 0
	for i := range due {
		sub := &due[i]
		updated, err := s.transition(ctx, &sub.Subscription, StateChange{Status: StatusActive})
		if err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				continue
			}
			return resumed, err
		}
		resumed++
		s.notify(ctx, EventResumed, updated, sub.PlanName)
	}

	metrics.RecordScheduledResumes(resumed)
	return resumed, nil
}

// findOwned loads a subscription for action by callerID. A missing record and
// a record owned by someone else are reported identically.
func (s *service) findOwned(ctx context.Context, id, callerID uuid.UUID) (*SubscriptionWithPlan, error) {
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFoundOrUnauthorized()
		}
		return nil, err
	}
	if sub.UserID != callerID {
		return nil, notFoundOrUnauthorized()
	}
	return sub, nil
}

func (s *service) transition(ctx context.Context, sub *Subscription, change StateChange) (*Subscription, error) {
	if !sub.Status.CanTransitionTo(change.Status) {
		return nil, apperr.New(apperr.KindInvalidTransition,
			"Subscription cannot move from "+string(sub.Status)+" to "+string(change.Status)+".")
	}

	updated, err := s.repo.UpdateState(ctx, sub.ID, sub.Version, change)
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			metrics.RecordSubscriptionConflict()
			return nil, &apperr.Error{
				Kind:    apperr.KindConflict,
				Message: "Subscription was modified by another request. Please retry.",
				Err:     err,
			}
		}
		return nil, err
	}

	metrics.RecordSubscriptionTransition(string(sub.Status), string(updated.Status))
	logger.Info("subscription status changed",
		"subscription_id", sub.ID,
		"from", sub.Status,
		"to", updated.Status,
		"version", updated.Version,
	)
	return updated, nil
}

func (s *service) notify(ctx context.Context, event Event, sub *Subscription, planName string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SubscriptionChanged(ctx, event, sub, planName); err != nil {
		logger.Warn("subscription notification failed",
			"subscription_id", sub.ID,
			"event", event,
			"error", err,
		)
	}
}

func notFoundOrUnauthorized() *apperr.Error {
	return apperr.New(apperr.KindNotFoundOrUnauthorized, "Forbidden. You can only manage your own subscriptions.")
}

func validateCreate(req CreateRequest) (uuid.UUID, error) {
	var fields []apperr.FieldError

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		fields = append(fields, apperr.Field("plan_id", "plan_id must be a valid UUID"))
	}
	if msg := checkSet(req.MealTypes, MealTypes); msg != "" {
		fields = append(fields, apperr.Field("meal_types", "meal_types "+msg))
	}
	if msg := checkSet(req.DeliveryDays, DeliveryDays); msg != "" {
		fields = append(fields, apperr.Field("delivery_days", "delivery_days "+msg))
	}
	if !api.IsValidPhone(req.PhoneNumber) {
		fields = append(fields, apperr.Field("phone_number", "phone_number must be a valid Indonesian mobile number"))
	}

	if len(fields) > 0 {
		return uuid.Nil, apperr.Validation(fields...)
	}
	return planID, nil
}

func checkSet(values, allowed []string) string {
	if len(values) == 0 {
		return "must contain at least 1 item(s)"
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !contains(allowed, v) {
			return "contains an unknown value: " + v
		}
		if seen[v] {
			return "must not contain duplicates"
		}
		seen[v] = true
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func normalizeAllergies(a *string) *string {
	if a == nil || *a == "" {
		return nil
	}
	return a
}

func parsePauseWindow(req PauseRequest) (time.Time, time.Time, error) {
	var fields []apperr.FieldError

	start, err := time.Parse(dateLayout, req.PauseStartDate)
	if err != nil {
		fields = append(fields, apperr.Field("pause_start_date", "pause_start_date must be a date in YYYY-MM-DD format"))
	}
	end, err := time.Parse(dateLayout, req.PauseEndDate)
	if err != nil {
		fields = append(fields, apperr.Field("pause_end_date", "pause_end_date must be a date in YYYY-MM-DD format"))
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperr.Validation(fields...)
	}
	return start, end, nil
}

func filterFromQuery(q ListQuery) (Filter, error) {
	f := Filter{
		Status: Status(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	}

	if f.Status != "" && !f.Status.Valid() {
		return Filter{}, apperr.Validation(apperr.Field("status", "status must be one of: active, paused, cancelled"))
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	if q.StartDate != "" {
		from, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return Filter{}, apperr.Validation(apperr.Field("start_date", "start_date must be a date in YYYY-MM-DD format"))
		}
		f.From = &from
	}
	if q.EndDate != "" {
		to, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return Filter{}, apperr.Validation(apperr.Field("end_date", "end_date must be a date in YYYY-MM-DD format"))
		}
		// end_date is inclusive of the whole day
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.To.After(*f.From) {
		return Filter{}, &apperr.Error{
			Kind:    apperr.KindInvalidDateRange,
			Message: "End date must not be before start date.",
			Fields:  []apperr.FieldError{apperr.Field("end_date", "End date must not be before start date.")},
		}
	}

	return f, nil
}
