package billing

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// Plan maps to the plan table. Amounts are stored in minor units.
type Plan struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description,omitempty"`
	AmountCents  int64     `db:"amount_cents" json:"amount_cents"`
	Currency     string    `db:"currency" json:"currency"`
	DurationDays int       `db:"duration_days" json:"duration_days"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Subscription maps to the subscription table.
type Subscription struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	PlanID    uuid.UUID `db:"plan_id" json:"plan_id"`
	Status    string    `db:"status" json:"status"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	AutoRenew bool      `db:"auto_renew" json:"auto_renew"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ExpiredAt reports whether the subscription window has passed at the given
// instant.
func (s *Subscription) ExpiredAt(t time.Time) bool {
	return t.After(s.EndDate)
}
