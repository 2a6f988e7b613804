package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Dashboard metrics
// @Description  New subscriptions in the window, MRR, reactivations in the last 30 days and active count
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        start_date query string false "YYYY-MM-DD"
// @Param        end_date   query string false "YYYY-MM-DD, inclusive"
// @Success      200 {object} api.Envelope{data=dashboard.Metrics}
// @Failure      400 {object} api.Envelope
// @Failure      403 {object} api.Envelope
// @Router       /admin/dashboard/metrics [get]
func (h *Handler) GetMetrics(c *gin.Context) {
	var q Query
	if !api.BindQuery(c, &q) {
		return
	}

	m, err := h.service.GetMetrics(c.Request.Context(), q)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.OK(c, "Dashboard metrics retrieved successfully.", m)
}
