package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crowdfund/internal/models"
)

// ProjectFinder is the read surface the donation service needs.
type ProjectFinder interface {
	FindBySlug(ctx context.Context, slug string) (*models.Project, error)
}

// DonationWriter persists a donation and the project aggregate update in one
// unit of work, returning the updated project.
type DonationWriter interface {
	Create(ctx context.Context, donation *models.Donation) (*models.Project, error)
}

// DonationResult reports a recorded donation and the project's new standing.
type DonationResult struct {
	Donation      *models.Donation `json:"donation"`
	Project       *models.Project  `json:"project"`
	GoalReached   bool             `json:"goal_reached"`
	FundedPercent float64          `json:"funded_percent"`
}

type DonationService struct {
	projects  ProjectFinder
	donations DonationWriter
	logger    zerolog.Logger
}

func NewDonationService(projects ProjectFinder, donations DonationWriter, logger zerolog.Logger) *DonationService {
	return &DonationService{projects: projects, donations: donations, logger: logger}
}

// ValidateDonation applies the donation rules against a snapshot of the
// project. The store re-checks status and deadline under the row lock, so a
// passing pre-check can still be rejected there.
func ValidateDonation(project *models.Project, donorID uuid.UUID, amountPence int64, now time.Time) error {
	if amountPence < models.MinDonationPence {
		return models.NewValidationError("minimum donation amount is 1.00")
	}
	if project.Status != models.StatusActive {
		return models.NewValidationError("project is not active")
	}
	if !project.EndAt.After(now) {
		return models.NewValidationError("project campaign has ended")
	}
	if project.CreatorID == donorID {
		return models.NewEligibilityError("you cannot donate to your own project")
	}
	return nil
}

// Record validates and persists a donation. On success the project's raised
// amount has grown by exactly the donated amount, and its donor count by one
// if this was the donor's first donation to the project.
func (s *DonationService) Record(ctx context.Context, slug string, donorID uuid.UUID, amountPence int64, message string, anonymous bool) (*DonationResult, error) {
	project, err := s.projects.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, models.NewNotFoundError("project")
	}

	if err := ValidateDonation(project, donorID, amountPence, time.Now()); err != nil {
		return nil, err
	}

	donation := &models.Donation{
		ProjectID:   project.ID,
		DonorID:     donorID,
		AmountPence: amountPence,
		Message:     message,
		Anonymous:   anonymous,
	}
	updated, err := s.donations.Create(ctx, donation)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("project", updated.Slug).
		Str("donor", donorID.String()).
		Int64("amount_pence", amountPence).
		Float64("funded_percent", updated.FundedPercent()).
		Msg("donation recorded")

	return &DonationResult{
		Donation:      donation,
		Project:       updated,
		GoalReached:   updated.IsFunded(),
		FundedPercent: updated.FundedPercent(),
	}, nil
}
