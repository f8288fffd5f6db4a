package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/middlewares"
	"crowdfund/internal/responses"
	"crowdfund/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment handles POST /api/v1/projects/:slug/comments.
func (h *CommentHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), c.Param("slug"), middlewares.CurrentUserID(c), req.Body)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, comment, "Comment added successfully")
}

// ListComments handles GET /api/v1/projects/:slug/comments.
func (h *CommentHandler) ListComments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	comments, err := h.commentService.ListForProject(c.Request.Context(), c.Param("slug"), limit)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"comments": comments}, "")
}
