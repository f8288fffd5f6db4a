package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/middlewares"
	"crowdfund/internal/responses"
	"crowdfund/internal/services"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleLike handles POST /api/v1/projects/:slug/like.
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	status, err := h.likeService.Toggle(c.Request.Context(), c.Param("slug"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}

	message := "Removed from favorites"
	if status.Liked {
		message = "Added to favorites"
	}
	responses.Success(c, http.StatusOK, status, message)
}
