package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/responses"
	"crowdfund/internal/services"
)

type StatsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewStatsHandler(analyticsService *services.AnalyticsService) *StatsHandler {
	return &StatsHandler{analyticsService: analyticsService}
}

// PlatformStats handles GET /api/v1/stats/platform.
func (h *StatsHandler) PlatformStats(c *gin.Context) {
	stats, err := h.analyticsService.PlatformStats(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, stats, "")
}

// CategoryStats handles GET /api/v1/stats/categories.
func (h *StatsHandler) CategoryStats(c *gin.Context) {
	stats, err := h.analyticsService.CategoryStats(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"categories": stats}, "")
}

// ProjectAnalytics handles GET /api/v1/projects/:slug/analytics.
func (h *StatsHandler) ProjectAnalytics(c *gin.Context) {
	report, err := h.analyticsService.ProjectAnalytics(c.Request.Context(), c.Param("slug"))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, report, "")
}
