package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/hisaabos/backend/internal/application/report"
)

// ReportHandler handles dashboard API endpoints
type ReportHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard computes the full dashboard over an optional date window
func (h *ReportHandler) Dashboard(c *gin.Context) {
	var filter reportapp.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dashboard, err := h.dashboardService.Dashboard(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dashboard)
}
