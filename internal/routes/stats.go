package routes

import (
	"github.com/gin-gonic/gin"

	"crowdfund/internal/handlers"
)

type StatsRoutes struct {
	handler *handlers.StatsHandler
}

func NewStatsRoutes(handler *handlers.StatsHandler) *StatsRoutes {
	return &StatsRoutes{handler: handler}
}

func (r *StatsRoutes) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/stats")
	{
		stats.GET("/platform", r.handler.PlatformStats)
		stats.GET("/categories", r.handler.CategoryStats)
	}
}
