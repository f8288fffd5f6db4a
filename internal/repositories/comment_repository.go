package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"crowdfund/internal/models"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.Prepare()
	return r.pool.QueryRow(ctx, `
		INSERT INTO comments (id, project_id, user_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, comment.ID, comment.ProjectID, comment.UserID, comment.Body).Scan(&comment.CreatedAt)
}

func (r *CommentRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]models.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cm.id, cm.project_id, cm.user_id, cm.body, cm.created_at,
		       COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), u.username)
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.project_id = $1
		ORDER BY cm.created_at DESC, cm.id
		LIMIT $2
	`, projectID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.Body, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
