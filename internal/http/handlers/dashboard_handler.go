package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recyconnect/backend/internal/http/handlers/common"
	"github.com/recyconnect/backend/internal/service"
)

// DashboardHandler отдаёт сводную статистику для панели администратора.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler создаёт хэндлер.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats обрабатывает GET /api/dashboard/stats. Только администратор.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, stats)
}
