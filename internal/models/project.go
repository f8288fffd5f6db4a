package models

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses. Only active projects are discoverable and accept donations.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusDraft     = "draft"
)

// Project is a fundraising campaign. Monetary amounts are fixed-point pence
// (two implied decimals). RaisedPence and DonorCount are only ever mutated by
// the donation-recording transaction; ViewCount increments are best-effort.
type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	About       string    `json:"about"`
	ImageURL    string    `json:"image_url,omitempty"`
	TargetPence int64     `json:"target_pence"`
	RaisedPence int64     `json:"raised_pence"`
	DonorCount  int       `json:"donor_count"`
	ViewCount   int       `json:"view_count"`
	Status      string    `json:"status"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatorID   uuid.UUID `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	EndAt       time.Time `json:"end_at"`

	// Denormalized by the list/detail queries (joined, not stored).
	CategoryName string `json:"category_name,omitempty"`
	CreatorName  string `json:"creator_name,omitempty"`
}

func (p *Project) Prepare() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
}

// FundedPercent returns raised/target as a percentage capped to [0, 100].
// Projects without a positive target report 0.
func (p *Project) FundedPercent() float64 {
	if p.TargetPence <= 0 {
		return 0
	}
	pct := float64(p.RaisedPence) / float64(p.TargetPence) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// RemainingPence returns the amount still needed, floored at zero.
func (p *Project) RemainingPence() int64 {
	remaining := p.TargetPence - p.RaisedPence
	if remaining < 0 {
		return 0
	}
	return remaining
}

// DaysLeftAt returns whole days until the campaign ends, floored at zero.
func (p *Project) DaysLeftAt(now time.Time) int {
	if !p.EndAt.After(now) {
		return 0
	}
	return int(p.EndAt.Sub(now).Hours() / 24)
}

func (p *Project) IsFunded() bool {
	return p.TargetPence > 0 && p.RaisedPence >= p.TargetPence
}
