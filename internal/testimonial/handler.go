package testimonial

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Submit a testimonial
// @Description  Stored as pending until an admin approves it
// @Tags         testimonials
// @Accept       json
// @Produce      json
// @Param        request body testimonial.SubmitRequest true "Testimonial"
// @Success      201 {object} api.Envelope{data=testimonial.Testimonial}
// @Failure      400 {object} api.Envelope
// @Router       /testimonials [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, "Testimonial submitted successfully, awaiting approval.", t)
}

// @Summary      List approved testimonials
// @Tags         testimonials
// @Produce      json
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200 {object} api.Envelope{data=[]testimonial.Testimonial}
// @Router       /testimonials [get]
func (h *Handler) ListApproved(c *gin.Context) {
	var q ListQuery
	if !api.BindQuery(c, &q) {
		return
	}

	items, err := h.service.ListApproved(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Testimonials retrieved successfully.", items)
}

// @Summary      List testimonials for moderation
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, approved or rejected"
// @Param        limit  query int    false "Page size"
// @Param        offset query int    false "Offset"
// @Success      200 {object} api.Envelope{data=[]testimonial.Testimonial}
// @Failure      400 {object} api.Envelope
// @Router       /admin/testimonials [get]
func (h *Handler) ListAll(c *gin.Context) {
	var q ListQuery
	if !api.BindQuery(c, &q) {
		return
	}

	items, err := h.service.ListAll(c.Request.Context(), q)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Testimonials retrieved successfully.", items)
}

// @Summary      Approve a testimonial
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Testimonial ID"
// @Success      200 {object} api.Envelope{data=testimonial.Testimonial}
// @Failure      404 {object} api.Envelope
// @Router       /admin/testimonials/{id}/approve [put]
func (h *Handler) Approve(c *gin.Context) {
	h.moderate(c, h.service.Approve, "Testimonial approved successfully.")
}

// @Summary      Reject a testimonial
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Testimonial ID"
// @Success      200 {object} api.Envelope{data=testimonial.Testimonial}
// @Failure      404 {object} api.Envelope
// @Router       /admin/testimonials/{id}/reject [put]
func (h *Handler) Reject(c *gin.Context) {
	h.moderate(c, h.service.Reject, "Testimonial rejected successfully.")
}

type moderateFunc func(ctx context.Context, id uuid.UUID) (*Testimonial, error)

func (h *Handler) moderate(c *gin.Context, fn moderateFunc, message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, apperr.New(apperr.KindNotFound, "Testimonial not found."))
		return
	}

	t, err := fn(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, message, t)
}
