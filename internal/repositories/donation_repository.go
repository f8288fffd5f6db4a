package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crowdfund/internal/models"
)

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

// Create records the donation and updates the parent project's aggregates in
// one transaction. The project row is locked first, so concurrent donations
// to the same project serialize here; raised_pence grows by exactly the
// donation amount and donor_count grows only on a donor's first donation.
// The project status and deadline are re-checked under the lock.
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) (*models.Project, error) {
	donation.Prepare()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	var endAt time.Time
	err = tx.QueryRow(ctx,
		`SELECT status, end_at FROM projects WHERE id = $1 FOR UPDATE`,
		donation.ProjectID,
	).Scan(&status, &endAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError("project")
		}
		return nil, err
	}
	if status != models.StatusActive {
		return nil, models.NewValidationError("project is not active")
	}
	if !endAt.After(time.Now()) {
		return nil, models.NewValidationError("project campaign has ended")
	}

	var firstDonation bool
	err = tx.QueryRow(ctx,
		`SELECT NOT EXISTS(SELECT 1 FROM donations WHERE project_id = $1 AND donor_id = $2)`,
		donation.ProjectID, donation.DonorID,
	).Scan(&firstDonation)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO donations (id, project_id, donor_id, amount_pence, message, anonymous)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`,
		donation.ID,
		donation.ProjectID,
		donation.DonorID,
		donation.AmountPence,
		donation.Message,
		donation.Anonymous,
	).Scan(&donation.CreatedAt)
	if err != nil {
		return nil, err
	}

	increment := 0
	if firstDonation {
		increment = 1
	}
	_, err = tx.Exec(ctx, `
		UPDATE projects
		SET raised_pence = raised_pence + $2,
		    donor_count = donor_count + $3,
		    updated_at = now()
		WHERE id = $1
	`, donation.ProjectID, donation.AmountPence, increment)
	if err != nil {
		return nil, err
	}

	query := `SELECT` + projectColumns + projectJoins + ` WHERE p.id = $1`
	project, err := scanProject(tx.QueryRow(ctx, query, donation.ProjectID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return project, nil
}

// ListByProject returns every donation to the project, newest first, with the
// donor's display name joined.
func (r *DonationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error) {
	query := `
		SELECT d.id, d.project_id, d.donor_id, d.amount_pence, d.message, d.anonymous, d.created_at,
		       COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username)
		FROM donations d
		JOIN users u ON u.id = d.donor_id
		WHERE d.project_id = $1
		ORDER BY d.created_at DESC, d.id
	`
	return r.queryDonations(ctx, query, projectID)
}

// ListByDonor returns a user's donation history, newest first, with project
// titles joined.
func (r *DonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]models.Donation, error) {
	query := `
		SELECT d.id, d.project_id, d.donor_id, d.amount_pence, d.message, d.anonymous, d.created_at, p.title
		FROM donations d
		JOIN projects p ON p.id = d.project_id
		WHERE d.donor_id = $1
		ORDER BY d.created_at DESC, d.id
	`
	rows, err := r.pool.Query(ctx, query, donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.DonorID, &d.AmountPence, &d.Message,
			&d.Anonymous, &d.CreatedAt, &d.ProjectTitle); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}

// ListByProjectDonors returns every donation made by anyone who donated to
// the given project, the input to collaborative similarity.
func (r *DonationRepository) ListByProjectDonors(ctx context.Context, projectID uuid.UUID) ([]models.Donation, error) {
	query := `
		SELECT d.id, d.project_id, d.donor_id, d.amount_pence, d.message, d.anonymous, d.created_at, ''
		FROM donations d
		WHERE d.donor_id IN (SELECT donor_id FROM donations WHERE project_id = $1)
		ORDER BY d.created_at DESC, d.id
	`
	return r.queryDonations(ctx, query, projectID)
}

func (r *DonationRepository) queryDonations(ctx context.Context, query string, args ...any) ([]models.Donation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.DonorID, &d.AmountPence, &d.Message,
			&d.Anonymous, &d.CreatedAt, &d.DonorName); err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
