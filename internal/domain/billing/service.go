package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/panacare/panacare-api/internal/platform/db"
)

type Service struct {
	plans         PlanRepository
	subscriptions SubscriptionRepository
}

func NewService(plans PlanRepository, subscriptions SubscriptionRepository) *Service {
	return &Service{plans: plans, subscriptions: subscriptions}
}

func (s *Service) CreatePlan(ctx context.Context, p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.AmountCents < 0 {
		return fmt.Errorf("amount_cents must not be negative")
	}
	if p.DurationDays <= 0 {
		return fmt.Errorf("duration_days must be positive")
	}
	if p.Currency == "" {
		p.Currency = "KES"
	}
	p.Active = true
	return s.plans.Create(ctx, p)
}

func (s *Service) GetPlan(ctx context.Context, id uuid.UUID) (*Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *Service) UpdatePlan(ctx context.Context, p *Plan) error {
	if p.DurationDays <= 0 {
		return fmt.Errorf("duration_days must be positive")
	}
	return s.plans.Update(ctx, p)
}

func (s *Service) ListPlans(ctx context.Context, limit, offset int) ([]*Plan, int, error) {
	return s.plans.List(ctx, limit, offset)
}

// Subscribe enrols a patient in a plan. The subscription window is derived
// from the plan's duration.
func (s *Service) Subscribe(ctx context.Context, patientID, planID uuid.UUID, autoRenew bool) (*Subscription, error) {
	if patientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	var sub *Subscription
	// Plan lookup and enrolment commit or fail together.
	err := db.RunInTx(ctx, func(ctx context.Context) error {
		plan, err := s.plans.GetByID(ctx, planID)
		if err != nil {
			return fmt.Errorf("plan not found")
		}
		if !plan.Active {
			return fmt.Errorf("plan is not active")
		}
		start := time.Now()
		sub = &Subscription{
			PatientID: patientID,
			PlanID:    planID,
			Status:    SubscriptionActive,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, plan.DurationDays),
			AutoRenew: autoRenew,
		}
		return s.subscriptions.Create(ctx, sub)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) GetSubscription(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Lazily flip active subscriptions whose window has passed.
	if sub.Status == SubscriptionActive && sub.ExpiredAt(time.Now()) {
		sub.Status = SubscriptionExpired
		if err := s.subscriptions.Update(ctx, sub); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func (s *Service) CancelSubscription(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == SubscriptionCancelled {
		return sub, nil
	}
	sub.Status = SubscriptionCancelled
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) ListSubscriptionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Subscription, int, error) {
	return s.subscriptions.ListByPatient(ctx, patientID, limit, offset)
}

// ExpireDueSubscriptions bulk-expires active subscriptions whose window has
// passed. Meant to be triggered periodically by an operator or cron hook.
func (s *Service) ExpireDueSubscriptions(ctx context.Context) (int64, error) {
	return s.subscriptions.ExpireDue(ctx, time.Now())
}
