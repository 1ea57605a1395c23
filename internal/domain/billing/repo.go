package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PlanRepository interface {
	Create(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	Update(ctx context.Context, p *Plan) error
	List(ctx context.Context, limit, offset int) ([]*Plan, int, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Subscription, int, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}
