package testimonial

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Testimonial struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	ReviewMessage string    `db:"review_message" json:"review_message"`
	Rating        int       `db:"rating" json:"rating"`
	Status        Status    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type SubmitRequest struct {
	CustomerName  string `json:"customer_name" binding:"required,min=2,max=100" example:"Siti"`
	ReviewMessage string `json:"review_message" binding:"required,min=10,max=1000" example:"The protein plan keeps me full all day."`
	Rating        int    `json:"rating" binding:"required,gte=1,lte=5" example:"5"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Limit  int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Offset int    `form:"offset" binding:"omitempty,gte=0"`
}
