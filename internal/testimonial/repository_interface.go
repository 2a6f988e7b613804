package testimonial

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("testimonial not found")

type Repository interface {
	Create(ctx context.Context, customerName, reviewMessage string, rating int) (*Testimonial, error)
	List(ctx context.Context, status Status, limit, offset int) ([]Testimonial, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Testimonial, error)
}
