package models

import (
	"time"

	"github.com/google/uuid"
)

// Like is an idempotent (project, user) toggle; the row's existence means "liked".
type Like struct {
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
