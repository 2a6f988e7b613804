package mealplan

import (
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

// @Summary      List meal plans
// @Description  Returns every active meal plan, cheapest first
// @Tags         meal-plans
// @Produce      json
// @Success      200 {object} api.Envelope{data=[]mealplan.MealPlan}
// @Failure      500 {object} api.Envelope
// @Router       /meal-plans [get]
func (h *Handler) List(c *gin.Context) {
	plans, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Meal plans retrieved successfully.", plans)
}

// @Summary      Get a meal plan
// @Tags         meal-plans
// @Produce      json
// @Param        id path string true "Meal plan ID"
// @Success      200 {object} api.Envelope{data=mealplan.MealPlan}
// @Failure      400 {object} api.Envelope
// @Failure      404 {object} api.Envelope
// @Router       /meal-plans/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		api.Fail(c, apperr.Validation(apperr.Field("id", "id must be a valid UUID")))
		return
	}

	plan, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Meal plan retrieved successfully.", plan)
}
