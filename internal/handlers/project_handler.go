package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crowdfund/internal/middlewares"
	"crowdfund/internal/responses"
	"crowdfund/internal/services"
	"crowdfund/internal/utils"
)

type ProjectHandler struct {
	projectService   *services.ProjectService
	discoveryService *services.DiscoveryService
}

func NewProjectHandler(projectService *services.ProjectService, discoveryService *services.DiscoveryService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, discoveryService: discoveryService}
}

// ListProjects handles GET /api/v1/projects with search, filters, sorting,
// and pagination. Unparseable numeric filters are ignored rather than
// rejected.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	query := c.Query("search")

	filters := services.ProjectFilters{
		Category:      c.Query("category"),
		FundingStatus: c.Query("funding_status"),
		TimeWindow:    c.Query("time_window"),
	}
	if raw := c.Query("min_amount"); raw != "" {
		if pence, err := utils.ParsePence(raw); err == nil {
			filters.MinTargetPence = pence
		}
	}
	if raw := c.Query("max_amount"); raw != "" {
		if pence, err := utils.ParsePence(raw); err == nil {
			filters.MaxTargetPence = pence
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))

	result, err := h.discoveryService.ListProjects(c.Request.Context(), query, filters, c.Query("sort"), page, perPage)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, result, "")
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), middlewares.CurrentUserID(c), req)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusCreated, project, "Project created successfully")
}

// GetProject handles GET /api/v1/projects/:slug.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	detail, err := h.projectService.GetDetail(c.Request.Context(), c.Param("slug"), middlewares.CurrentUserID(c))
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, detail, "")
}

// Autocomplete handles GET /api/v1/projects/autocomplete.
func (h *ProjectHandler) Autocomplete(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	suggestions, err := h.discoveryService.Autocomplete(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"suggestions": suggestions}, "")
}

// Featured handles GET /api/v1/projects/featured.
func (h *ProjectHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	projects, err := h.discoveryService.Featured(c.Request.Context(), limit)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"projects": projects}, "")
}

// Trending handles GET /api/v1/projects/trending.
func (h *ProjectHandler) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	projects, err := h.discoveryService.Trending(c.Request.Context(), limit)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, http.StatusOK, gin.H{"projects": projects}, "")
}
