package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/responses"
	"crowdfund/internal/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories handles GET /api/v1/categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"categories": categories}, "")
}

// CategoryProjects handles GET /api/v1/categories/:name/projects.
func (h *CategoryHandler) CategoryProjects(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))

	result, err := h.categoryService.ProjectsByCategory(
		c.Request.Context(), c.Param("name"), c.Query("sort"), page, perPage)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, result, "")
}
