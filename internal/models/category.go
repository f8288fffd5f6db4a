package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// ProjectCount is the number of active projects, populated by list queries.
	ProjectCount int `json:"project_count,omitempty"`
}

func (c *Category) Prepare() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}
