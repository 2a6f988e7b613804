package testimonial

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
	"github.com/rsydfhmy03/SEA-Catering/internal/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Testimonial, error)
	ListApproved(ctx context.Context, limit, offset int) ([]Testimonial, error)
	ListAll(ctx context.Context, q ListQuery) ([]Testimonial, error)
	Approve(ctx context.Context, id uuid.UUID) (*Testimonial, error)
	Reject(ctx context.Context, id uuid.UUID) (*Testimonial, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

// Submit stores a testimonial as pending. It goes public only once approved.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (*Testimonial, error) {
	name := strings.TrimSpace(req.CustomerName)
	message := strings.TrimSpace(req.ReviewMessage)

	nameLen := utf8.RuneCountInString(name)
	messageLen := utf8.RuneCountInString(message)

	var fields []apperr.FieldError
	if nameLen < 2 || nameLen > 100 {
		fields = append(fields, apperr.Field("customer_name", "customer_name must be between 2 and 100 characters"))
	}
	if messageLen < 10 || messageLen > 1000 {
		fields = append(fields, apperr.Field("review_message", "review_message must be between 10 and 1000 characters"))
	}
	if req.Rating < 1 || req.Rating > 5 {
		fields = append(fields, apperr.Field("rating", "rating must be between 1 and 5"))
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	t, err := s.repo.Create(ctx, name, message, req.Rating)
	if err != nil {
		return nil, err
	}

	metrics.RecordTestimonial(string(StatusPending))
	logger.Info("testimonial submitted", "testimonial_id", t.ID.String(), "rating", t.Rating)
	return t, nil
}

func (s *service) ListApproved(ctx context.Context, limit, offset int) ([]Testimonial, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.List(ctx, StatusApproved, limit, offset)
}

func (s *service) ListAll(ctx context.Context, q ListQuery) ([]Testimonial, error) {
	limit, offset := clampPage(q.Limit, q.Offset)
	return s.repo.List(ctx, Status(q.Status), limit, offset)
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	return s.moderate(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id uuid.UUID) (*Testimonial, error) {
	return s.moderate(ctx, id, StatusRejected)
}

func (s *service) moderate(ctx context.Context, id uuid.UUID, status Status) (*Testimonial, error) {
	t, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Testimonial not found.")
		}
		return nil, err
	}

	metrics.RecordTestimonial(string(status))
	logger.Info("testimonial moderated", "testimonial_id", id.String(), "status", string(status))
	return t, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
