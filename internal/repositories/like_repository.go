package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

// Toggle removes the like if present, otherwise creates it. Returns whether
// the project ends up liked and the resulting like count.
func (r *LikeRepository) Toggle(ctx context.Context, projectID, userID uuid.UUID) (bool, int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM likes WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return false, 0, err
	}

	liked := false
	if tag.RowsAffected() == 0 {
		// ON CONFLICT keeps the toggle idempotent when two requests race.
		_, err = r.pool.Exec(ctx, `
			INSERT INTO likes (project_id, user_id) VALUES ($1, $2)
			ON CONFLICT (project_id, user_id) DO NOTHING
		`, projectID, userID)
		if err != nil {
			return false, 0, err
		}
		liked = true
	}

	count, err := r.Count(ctx, projectID)
	return liked, count, err
}

func (r *LikeRepository) Count(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE project_id = $1`, projectID).Scan(&count)
	return count, err
}

func (r *LikeRepository) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE project_id = $1 AND user_id = $2)`,
		projectID, userID).Scan(&exists)
	return exists, err
}
