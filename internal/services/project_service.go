package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crowdfund/internal/models"
	"crowdfund/internal/repositories"
	"crowdfund/internal/utils"
)

// MinTargetPence is the smallest campaign goal accepted at creation (10.00).
const MinTargetPence int64 = 1000

const (
	recentDonationsLimit = 5
	detailCommentsLimit  = 10
	detailSimilarLimit   = 4
)

type ProjectService struct {
	projectRepo  *repositories.ProjectRepository
	donationRepo *repositories.DonationRepository
	commentRepo  *repositories.CommentRepository
	likeRepo     *repositories.LikeRepository
	categoryRepo *repositories.CategoryRepository
	logger       zerolog.Logger
}

func NewProjectService(
	projectRepo *repositories.ProjectRepository,
	donationRepo *repositories.DonationRepository,
	commentRepo *repositories.CommentRepository,
	likeRepo *repositories.LikeRepository,
	categoryRepo *repositories.CategoryRepository,
	logger zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		donationRepo: donationRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

type CreateProjectRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	About       string    `json:"about"`
	ImageURL    string    `json:"image_url"`
	TargetPence int64     `json:"target_pence" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
}

func (s *ProjectService) CreateProject(ctx context.Context, creatorID uuid.UUID, req CreateProjectRequest) (*models.Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, models.NewValidationError("title is required")
	}
	if req.TargetPence < MinTargetPence {
		return nil, models.NewValidationError("minimum target amount is 10.00")
	}
	if !req.EndAt.After(time.Now()) {
		return nil, models.NewValidationError("end date must be in the future")
	}

	category, err := s.categoryRepo.FindByName(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("category")
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		About:       req.About,
		ImageURL:    req.ImageURL,
		TargetPence: req.TargetPence,
		CategoryID:  category.ID,
		CreatorID:   creatorID,
		EndAt:       req.EndAt,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	project.CategoryName = category.Name

	s.logger.Info().Str("slug", project.Slug).Msg("project created")
	return project, nil
}

// uniqueSlug derives the slug from the title, suffixing a counter on
// collision.
func (s *ProjectService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "project"
	}
	slug := base
	for counter := 1; ; counter++ {
		exists, err := s.projectRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// ProjectDetail is everything the detail page needs in one response.
type ProjectDetail struct {
	Project         *models.Project   `json:"project"`
	Analytics       AnalyticsReport   `json:"analytics"`
	RecentDonations []models.Donation `json:"recent_donations"`
	Comments        []models.Comment  `json:"comments"`
	Similar         []models.Project  `json:"similar"`
	LikeCount       int               `json:"like_count"`
	UserLiked       bool              `json:"user_liked"`
	UserDonated     bool              `json:"user_donated"`
}

// GetDetail loads a project by slug along with its analytics, recent
// donations (anonymous donors masked), comments, category-similar projects,
// and the viewer's own interactions. Non-creator views bump the view counter
// best-effort.
func (s *ProjectService) GetDetail(ctx context.Context, slug string, viewerID uuid.UUID) (*ProjectDetail, error) {
	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("project")
	}

	if viewerID != project.CreatorID {
		if err := s.projectRepo.IncrementViewCount(ctx, project.ID); err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("view count increment failed")
		} else {
			project.ViewCount++
		}
	}

	donations, err := s.donationRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{
		Project:   project,
		Analytics: ComputeProjectAnalytics(project, donations, time.Now()),
	}

	recent := donations
	if len(recent) > recentDonationsLimit {
		recent = recent[:recentDonationsLimit]
	}
	detail.RecentDonations = make([]models.Donation, len(recent))
	copy(detail.RecentDonations, recent)
	for i := range detail.RecentDonations {
		if detail.RecentDonations[i].Anonymous {
			detail.RecentDonations[i].DonorName = "Anonymous"
			detail.RecentDonations[i].DonorID = uuid.Nil
		}
	}

	detail.Comments, err = s.commentRepo.ListByProject(ctx, project.ID, detailCommentsLimit)
	if err != nil {
		return nil, err
	}

	active, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	detail.Similar = SimilarByCategory(project, active, detailSimilarLimit)

	detail.LikeCount, err = s.likeRepo.Count(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	if viewerID != uuid.Nil {
		detail.UserLiked, err = s.likeRepo.Exists(ctx, project.ID, viewerID)
		if err != nil {
			return nil, err
		}
		for _, d := range donations {
			if d.DonorID == viewerID {
				detail.UserDonated = true
				break
			}
		}
	}

	return detail, nil
}
