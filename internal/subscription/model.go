package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

const dateLayout = "2006-01-02"

var MealTypes = []string{"Breakfast", "Lunch", "Dinner"}

var DeliveryDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// transitions lists the legal status edges. Cancelled is terminal.
var transitions = map[Status][]Status{
	StatusActive: {StatusPaused, StatusCancelled},
	StatusPaused: {StatusPaused, StatusActive, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCancelled:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Subscription struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	UserID         uuid.UUID       `db:"user_id" json:"user_id"`
	PlanID         uuid.UUID       `db:"plan_id" json:"plan_id"`
	MealTypes      pq.StringArray  `db:"meal_types" json:"meal_types"`
	DeliveryDays   pq.StringArray  `db:"delivery_days" json:"delivery_days"`
	Allergies      *string         `db:"allergies" json:"allergies"`
	PhoneNumber    string          `db:"phone_number" json:"phone_number"`
	TotalPrice     decimal.Decimal `db:"total_price" json:"total_price"`
	Status         Status          `db:"status" json:"status"`
	StartDate      time.Time       `db:"start_date" json:"start_date"`
	EndDate        time.Time       `db:"end_date" json:"end_date"`
	PauseStartDate *time.Time      `db:"pause_start_date" json:"pause_start_date"`
	PauseEndDate   *time.Time      `db:"pause_end_date" json:"pause_end_date"`
	Version        int             `db:"version" json:"version"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

type SubscriptionWithPlan struct {
	Subscription
	PlanName string `db:"plan_name" json:"plan_name"`
}

// StateChange is the mutable part of a subscription written by a transition.
type StateChange struct {
	Status         Status
	PauseStartDate *time.Time
	PauseEndDate   *time.Time
}

type Filter struct {
	Status Status
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Page struct {
	Items  []Response `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type CreateRequest struct {
	PlanID       string   `json:"plan_id" binding:"required,uuid"`
	MealTypes    []string `json:"meal_types" binding:"required,min=1,max=3,unique,dive,oneof=Breakfast Lunch Dinner"`
	DeliveryDays []string `json:"delivery_days" binding:"required,min=1,max=7,unique,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Allergies    *string  `json:"allergies" binding:"omitempty,max=500"`
	PhoneNumber  string   `json:"phone_number" binding:"required,id_phone"`
}

type PauseRequest struct {
	PauseStartDate string `json:"pause_start_date" binding:"required,datetime=2006-01-02" example:"2025-07-01"`
	PauseEndDate   string `json:"pause_end_date" binding:"required,datetime=2006-01-02" example:"2025-07-08"`
}

type ListQuery struct {
	Status    string `form:"status" binding:"omitempty,oneof=active paused cancelled"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Offset    int    `form:"offset" binding:"omitempty,gte=0"`
}

// Response is the API view of a subscription. Dates are calendar dates.
type Response struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	PlanID         uuid.UUID       `json:"plan_id"`
	PlanName       string          `json:"plan_name,omitempty"`
	MealTypes      []string        `json:"meal_types"`
	DeliveryDays   []string        `json:"delivery_days"`
	Allergies      *string         `json:"allergies"`
	PhoneNumber    string          `json:"phone_number"`
	TotalPrice     decimal.Decimal `json:"total_price" swaggertype:"string" example:"774000.00"`
	Status         Status          `json:"status" example:"active"`
	StartDate      string          `json:"start_date" example:"2025-06-24"`
	EndDate        string          `json:"end_date" example:"2025-07-24"`
	PauseStartDate *string         `json:"pause_start_date"`
	PauseEndDate   *string         `json:"pause_end_date"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func NewResponse(s *Subscription, planName string) Response {
	return Response{
		ID:             s.ID,
		UserID:         s.UserID,
		PlanID:         s.PlanID,
		PlanName:       planName,
		MealTypes:      []string(s.MealTypes),
		DeliveryDays:   []string(s.DeliveryDays),
		Allergies:      s.Allergies,
		PhoneNumber:    s.PhoneNumber,
		TotalPrice:     s.TotalPrice,
		Status:         s.Status,
		StartDate:      s.StartDate.Format(dateLayout),
		EndDate:        s.EndDate.Format(dateLayout),
		PauseStartDate: formatDate(s.PauseStartDate),
		PauseEndDate:   formatDate(s.PauseEndDate),
		Version:        s.Version,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func NewResponses(items []SubscriptionWithPlan) []Response {
	out := make([]Response, 0, len(items))
	for i := range items {
		out = append(out, NewResponse(&items[i].Subscription, items[i].PlanName))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// dateOf truncates t to midnight UTC of its calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addMonthClamped moves t one calendar month forward, capping the day at the
// last day of the target month: Jan 31 becomes Feb 28 (Feb 29 in leap years).
func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	// day 0 of the month after next is the last day of next month
	last := time.Date(y, m+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > last {
		d = last
	}
	return time.Date(y, m+1, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
