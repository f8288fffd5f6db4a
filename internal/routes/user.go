package routes

import (
	"github.com/gin-gonic/gin"

	"crowdfund/internal/handlers"
	"crowdfund/internal/middlewares"
)

type UserRoutes struct {
	donations       *handlers.DonationHandler
	recommendations *handlers.RecommendationHandler
}

func NewUserRoutes(donations *handlers.DonationHandler, recommendations *handlers.RecommendationHandler) *UserRoutes {
	return &UserRoutes{donations: donations, recommendations: recommendations}
}

func (r *UserRoutes) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/users/me")
	me.Use(middlewares.RequireIdentity)
	{
		me.GET("/donations", r.donations.UserDonations)
		me.GET("/recommendations", r.recommendations.ForUser)
	}
}
