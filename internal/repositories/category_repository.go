package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crowdfund/internal/models"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.Prepare()
	return r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, description, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, category.ID, category.Name, category.Description, category.Icon).Scan(&category.CreatedAt)
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var c models.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, icon, created_at FROM categories WHERE name = $1
	`, name).Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListWithActiveCounts returns all categories annotated with their number of
// active projects, ordered by name.
func (r *CategoryRepository) ListWithActiveCounts(ctx context.Context) ([]models.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.name, c.description, c.icon, c.created_at,
		       COUNT(p.id) FILTER (WHERE p.status = 'active')
		FROM categories c
		LEFT JOIN projects p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.CreatedAt, &c.ProjectCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
