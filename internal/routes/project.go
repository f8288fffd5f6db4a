package routes

import (
	"github.com/gin-gonic/gin"

	"crowdfund/internal/handlers"
	"crowdfund/internal/middlewares"
)

type ProjectRoutes struct {
	projects        *handlers.ProjectHandler
	donations       *handlers.DonationHandler
	comments        *handlers.CommentHandler
	likes           *handlers.LikeHandler
	stats           *handlers.StatsHandler
	recommendations *handlers.RecommendationHandler
}

func NewProjectRoutes(
	projects *handlers.ProjectHandler,
	donations *handlers.DonationHandler,
	comments *handlers.CommentHandler,
	likes *handlers.LikeHandler,
	stats *handlers.StatsHandler,
	recommendations *handlers.RecommendationHandler,
) *ProjectRoutes {
	return &ProjectRoutes{
		projects:        projects,
		donations:       donations,
		comments:        comments,
		likes:           likes,
		stats:           stats,
		recommendations: recommendations,
	}
}

func (r *ProjectRoutes) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", r.projects.ListProjects)
		projects.GET("/autocomplete", r.projects.Autocomplete)
		projects.GET("/featured", r.projects.Featured)
		projects.GET("/trending", r.projects.Trending)
		projects.GET("/:slug", r.projects.GetProject)
		projects.GET("/:slug/analytics", r.stats.ProjectAnalytics)
		projects.GET("/:slug/similar", r.recommendations.Similar)
		projects.GET("/:slug/comments", r.comments.ListComments)

		// Writes need an authenticated caller.
		projects.POST("", middlewares.RequireIdentity, r.projects.CreateProject)
		projects.POST("/:slug/donations", middlewares.RequireIdentity, r.donations.Donate)
		projects.POST("/:slug/comments", middlewares.RequireIdentity, r.comments.AddComment)
		projects.POST("/:slug/like", middlewares.RequireIdentity, r.likes.ToggleLike)
	}
}
