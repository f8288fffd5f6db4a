package services

import (
	"context"

	"github.com/google/uuid"

	"crowdfund/internal/models"
	"crowdfund/internal/repositories"
)

type LikeService struct {
	projectRepo *repositories.ProjectRepository
	likeRepo    *repositories.LikeRepository
}

func NewLikeService(projectRepo *repositories.ProjectRepository, likeRepo *repositories.LikeRepository) *LikeService {
	return &LikeService{projectRepo: projectRepo, likeRepo: likeRepo}
}

// LikeStatus is the outcome of a toggle.
type LikeStatus struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// Toggle flips the (project, user) like and reports the resulting state.
func (s *LikeService) Toggle(ctx context.Context, slug string, userID uuid.UUID) (*LikeStatus, error) {
	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("project")
	}

	liked, count, err := s.likeRepo.Toggle(ctx, project.ID, userID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Liked: liked, LikeCount: count}, nil
}
