package subscription

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
	"github.com/rsydfhmy03/SEA-Catering/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a subscription
// @Description  Prices the chosen plan, meal types and delivery days and starts a one month subscription
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body subscription.CreateRequest true "Subscription payload"
// @Success      201 {object} api.Envelope{data=subscription.Response}
// @Failure      400 {object} api.Envelope
// @Failure      401 {object} api.Envelope
// @Failure      500 {object} api.Envelope
// @Router       /subscriptions [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := auth.GetUserUUID(c)
	if !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Created(c, "Subscription created successfully.", sub)
}

// @Summary      List my active subscriptions
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Envelope{data=[]subscription.Response}
// @Failure      401 {object} api.Envelope
// @Failure      500 {object} api.Envelope
// @Router       /subscriptions/me/subscriptions [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserUUID(c)
	if !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	subs, err := h.service.ListActiveForUser(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "User subscriptions retrieved successfully.", subs)
}

// @Summary      List my paused subscriptions
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} api.Envelope{data=[]subscription.Response}
// @Failure      401 {object} api.Envelope
// @Failure      500 {object} api.Envelope
// @Router       /subscriptions/me/paused-subscriptions [get]
func (h *Handler) ListMinePaused(c *gin.Context) {
	userID, ok := auth.GetUserUUID(c)
	if !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	subs, err := h.service.ListPausedForUser(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "User paused subscriptions retrieved successfully.", subs)
}

// @Summary      Pause a subscription
// @Description  Marks the subscription paused for [pause_start_date, pause_end_date)
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Param        request body subscription.PauseRequest true "Pause window"
// @Success      200 {object} api.Envelope{data=subscription.Response}
// @Failure      400 {object} api.Envelope
// @Failure      401 {object} api.Envelope
// @Failure      403 {object} api.Envelope
// @Failure      409 {object} api.Envelope
// @Router       /subscriptions/{id}/pause [put]
func (h *Handler) Pause(c *gin.Context) {
	userID, ok := auth.GetUserUUID(c)
	if !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	var req PauseRequest
	if !api.BindJSON(c, &req) {
		return
	}

	id, ok := subscriptionID(c)
	if !ok {
		return
	}

	sub, err := h.service.Pause(c.Request.Context(), id, userID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Subscription paused successfully.", sub)
}

// @Summary      Resume a subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Success      200 {object} api.Envelope{data=subscription.Response}
// @Failure      401 {object} api.Envelope
// @Failure      403 {object} api.Envelope
// @Failure      409 {object} api.Envelope
// @Router       /subscriptions/{id}/resume [put]
func (h *Handler) Resume(c *gin.Context) {
	userID, ok := auth.GetUserUUID(c)
	if !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	id, ok := subscriptionID(c)
	if !ok {
		return
	}

	sub, err := h.service.Resume(c.Request.Context(), id, userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Subscription resumed successfully.", sub)
}

// @Summary      Cancel a subscription
// @Description  Cancelling an already cancelled subscription succeeds without changes
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscription ID"
// @Success      200 {object} api.Envelope{data=subscription.Response}
// @Failure      401 {object} api.Envelope
// @Failure      403 {object} api.Envelope
// @Failure      409 {object} api.Envelope
// @Router       /subscriptions/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := auth.GetUserUUID(c)
	if !ok {
		api.Unauthorized(c, "User not authenticated.")
		return
	}

	id, ok := subscriptionID(c)
	if !ok {
		return
	}

	sub, err := h.service.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Subscription cancelled successfully.", sub)
}

// @Summary      List all subscriptions
// @Description  Admin-only: every subscription, newest first, with optional status and creation date filters
// @Tags         admin,subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "active, paused or cancelled"
// @Param        start_date query string false "Created on or after (YYYY-MM-DD)"
// @Param        end_date query string false "Created on or before (YYYY-MM-DD)"
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200 {object} api.Envelope{data=subscription.Page}
// @Failure      400 {object} api.Envelope
// @Failure      401 {object} api.Envelope
// @Failure      403 {object} api.Envelope
// @Router       /admin/subscriptions [get]
func (h *Handler) ListAll(c *gin.Context) {
	var q ListQuery
	if !api.BindQuery(c, &q) {
		return
	}

	page, err := h.service.ListAll(c.Request.Context(), q)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Subscriptions retrieved successfully.", page)
}

// subscriptionID parses the :id path parameter. An unparsable id cannot name
// a subscription the caller owns, so it gets the same answer as a foreign one.
func subscriptionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, notFoundOrUnauthorized())
		return uuid.Nil, false
	}
	return id, true
}

