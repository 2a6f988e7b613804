package dashboard

import (
	"context"
	"time"

	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
)

const (
	dateLayout         = "2006-01-02"
	reactivationWindow = 30 * 24 * time.Hour
)

type Service interface {
	GetMetrics(ctx context.Context, q Query) (*Metrics, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) GetMetrics(ctx context.Context, q Query) (*Metrics, error) {
	w, err := parseWindow(q)
	if err != nil {
		return nil, err
	}
	return s.repo.Aggregate(ctx, w, s.now().UTC().Add(-reactivationWindow))
}

// parseWindow accepts both dates or neither. The end date is inclusive.
func parseWindow(q Query) (Window, error) {
	if q.StartDate == "" && q.EndDate == "" {
		return Window{}, nil
	}
	if q.StartDate == "" || q.EndDate == "" {
		field := "start_date"
		if q.EndDate == "" {
			field = "end_date"
		}
		return Window{}, apperr.Validation(apperr.Field(field, "start_date and end_date must be provided together"))
	}

	start, err := time.Parse(dateLayout, q.StartDate)
	if err != nil {
		return Window{}, apperr.Validation(apperr.Field("start_date", "start_date must be a date in YYYY-MM-DD format"))
	}
	end, err := time.Parse(dateLayout, q.EndDate)
	if err != nil {
		return Window{}, apperr.Validation(apperr.Field("end_date", "end_date must be a date in YYYY-MM-DD format"))
	}
	if end.Before(start) {
		return Window{}, &apperr.Error{
			Kind:    apperr.KindInvalidDateRange,
			Message: "End date must be after start date.",
			Fields:  []apperr.FieldError{apperr.Field("end_date", "End date must be after start date.")},
		}
	}

	to := end.AddDate(0, 0, 1)
	return Window{From: &start, To: &to}, nil
}
