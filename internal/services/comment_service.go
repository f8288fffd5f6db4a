package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"crowdfund/internal/models"
	"crowdfund/internal/repositories"
)

type CommentService struct {
	projectRepo *repositories.ProjectRepository
	commentRepo *repositories.CommentRepository
}

func NewCommentService(projectRepo *repositories.ProjectRepository, commentRepo *repositories.CommentRepository) *CommentService {
	return &CommentService{projectRepo: projectRepo, commentRepo: commentRepo}
}

func (s *CommentService) Add(ctx context.Context, slug string, userID uuid.UUID, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("comment body is required")
	}

	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("project")
	}

	comment := &models.Comment{
		ProjectID: project.ID,
		UserID:    userID,
		Body:      body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListForProject(ctx context.Context, slug string, limit int) ([]models.Comment, error) {
	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("project")
	}
	if limit <= 0 {
		limit = detailCommentsLimit
	}
	return s.commentRepo.ListByProject(ctx, project.ID, limit)
}
