package models

import (
	"time"

	"github.com/google/uuid"
)

// MinDonationPence is the smallest accepted donation (1.00 currency unit).
const MinDonationPence int64 = 100

// Donation is immutable once recorded. Recording one atomically bumps the
// parent project's raised amount, and its donor count on a first donation.
type Donation struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	DonorID     uuid.UUID `json:"donor_id"`
	AmountPence int64     `json:"amount_pence"`
	Message     string    `json:"message,omitempty"`
	Anonymous   bool      `json:"anonymous"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined for display; empty when the donation is anonymous.
	DonorName string `json:"donor_name,omitempty"`
	// Joined for history views.
	ProjectTitle string `json:"project_title,omitempty"`
}

func (d *Donation) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
}
