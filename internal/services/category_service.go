package services

import (
	"context"
	"time"

	"crowdfund/internal/models"
	"crowdfund/internal/repositories"
)

type CategoryService struct {
	categoryRepo *repositories.CategoryRepository
	projectRepo  *repositories.ProjectRepository
}

func NewCategoryService(categoryRepo *repositories.CategoryRepository, projectRepo *repositories.ProjectRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, projectRepo: projectRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.ListWithActiveCounts(ctx)
}

// ProjectsByCategory lists a category's active projects with the same
// sorting and pagination as the main listing.
func (s *CategoryService) ProjectsByCategory(ctx context.Context, name, sortKey string, page, perPage int) (ProjectPage, error) {
	category, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return ProjectPage{}, err
	}
	if category == nil {
		return ProjectPage{}, models.NewNotFoundError("category")
	}

	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return ProjectPage{}, err
	}
	filtered := FilterProjects(projects, "", ProjectFilters{Category: category.Name}, time.Now())
	return Paginate(SortProjects(filtered, sortKey, ""), page, perPage), nil
}
