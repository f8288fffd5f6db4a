package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/middlewares"
	"crowdfund/internal/responses"
	"crowdfund/internal/services"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
}

func NewRecommendationHandler(recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// ForUser handles GET /api/v1/users/me/recommendations.
func (h *RecommendationHandler) ForUser(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	projects, err := h.recommendationService.ForUser(c.Request.Context(), middlewares.CurrentUserID(c), limit)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"projects": projects}, "")
}

// Similar handles GET /api/v1/projects/:slug/similar.
func (h *RecommendationHandler) Similar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	projects, err := h.recommendationService.SimilarForProject(c.Request.Context(), c.Param("slug"), limit)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"projects": projects}, "")
}
