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

const projectColumns = `
	p.id, p.title, p.slug, p.description, p.about, p.image_url,
	p.target_pence, p.raised_pence, p.donor_count, p.view_count, p.status,
	p.category_id, p.creator_id, p.created_at, p.updated_at, p.end_at,
	c.name,
	COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username)`

const projectJoins = `
	FROM projects p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.creator_id`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	project.Prepare()

	query := `
		INSERT INTO projects (id, title, slug, description, about, image_url,
			target_pence, status, category_id, creator_id, end_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.ID,
		project.Title,
		project.Slug,
		project.Description,
		project.About,
		project.ImageURL,
		project.TargetPence,
		project.Status,
		project.CategoryID,
		project.CreatorID,
		project.EndAt,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Description,
		&p.About,
		&p.ImageURL,
		&p.TargetPence,
		&p.RaisedPence,
		&p.DonorCount,
		&p.ViewCount,
		&p.Status,
		&p.CategoryID,
		&p.CreatorID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.EndAt,
		&p.CategoryName,
		&p.CreatorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT` + projectColumns + projectJoins + ` WHERE p.id = $1`
	return scanProject(r.pool.QueryRow(ctx, query, id))
}

func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	query := `SELECT` + projectColumns + projectJoins + ` WHERE p.slug = $1`
	return scanProject(r.pool.QueryRow(ctx, query, slug))
}

// ListActive returns every active project with joined category and creator
// names, in slice form for the in-memory discovery pipeline.
func (r *ProjectRepository) ListActive(ctx context.Context) ([]models.Project, error) {
	query := `SELECT` + projectColumns + projectJoins + ` WHERE p.status = 'active' ORDER BY p.created_at DESC`
	return r.queryProjects(ctx, query)
}

// ListAll returns projects in every status, for resolving donation history
// against campaigns that have since completed.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	query := `SELECT` + projectColumns + projectJoins + ` ORDER BY p.created_at DESC`
	return r.queryProjects(ctx, query)
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]models.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// IncrementViewCount is best-effort; lost updates under concurrency are
// acceptable for view counters.
func (r *ProjectRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE projects SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}

func (r *ProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM projects WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

// ActivityCounts aggregates donation, comment, and like counts per project
// since the cutoff. Projects with no recent activity are absent from the map.
func (r *ProjectRepository) ActivityCounts(ctx context.Context, since time.Time) (map[uuid.UUID]models.ProjectActivity, error) {
	counts := make(map[uuid.UUID]models.ProjectActivity)

	collect := func(query string, assign func(a *models.ProjectActivity, n int)) error {
		rows, err := r.pool.Query(ctx, query, since)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id uuid.UUID
			var n int
			if err := rows.Scan(&id, &n); err != nil {
				return err
			}
			a := counts[id]
			assign(&a, n)
			counts[id] = a
		}
		return rows.Err()
	}

	if err := collect(
		`SELECT project_id, COUNT(*) FROM donations WHERE created_at >= $1 GROUP BY project_id`,
		func(a *models.ProjectActivity, n int) { a.Donations = n },
	); err != nil {
		return nil, err
	}
	if err := collect(
		`SELECT project_id, COUNT(*) FROM comments WHERE created_at >= $1 GROUP BY project_id`,
		func(a *models.ProjectActivity, n int) { a.Comments = n },
	); err != nil {
		return nil, err
	}
	if err := collect(
		`SELECT project_id, COUNT(*) FROM likes WHERE created_at >= $1 GROUP BY project_id`,
		func(a *models.ProjectActivity, n int) { a.Likes = n },
	); err != nil {
		return nil, err
	}

	return counts, nil
}
