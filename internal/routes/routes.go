package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/handlers"
)

func RegisterRoutes(
	router *gin.Engine,
	projectHandler *handlers.ProjectHandler,
	donationHandler *handlers.DonationHandler,
	commentHandler *handlers.CommentHandler,
	likeHandler *handlers.LikeHandler,
	categoryHandler *handlers.CategoryHandler,
	statsHandler *handlers.StatsHandler,
	recommendationHandler *handlers.RecommendationHandler,
) {
	api := router.Group("/api/v1")

	projectRoutes := NewProjectRoutes(projectHandler, donationHandler, commentHandler, likeHandler, statsHandler, recommendationHandler)
	projectRoutes.RegisterRoutes(api)

	categoryRoutes := NewCategoryRoutes(categoryHandler)
	categoryRoutes.RegisterRoutes(api)

	statsRoutes := NewStatsRoutes(statsHandler)
	statsRoutes.RegisterRoutes(api)

	userRoutes := NewUserRoutes(donationHandler, recommendationHandler)
	userRoutes.RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
