package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockPlanRepo struct {
	plans map[uuid.UUID]*Plan
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: make(map[uuid.UUID]*Plan)}
}

func (m *mockPlanRepo) Create(_ context.Context, p *Plan) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.plans[p.ID] = p
	return nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id uuid.UUID) (*Plan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPlanRepo) Update(_ context.Context, p *Plan) error {
	m.plans[p.ID] = p
	return nil
}

func (m *mockPlanRepo) List(_ context.Context, limit, offset int) ([]*Plan, int, error) {
	var result []*Plan
	for _, p := range m.plans {
		result = append(result, p)
	}
	return result, len(result), nil
}

type mockSubscriptionRepo struct {
	subs map[uuid.UUID]*Subscription
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{subs: make(map[uuid.UUID]*Subscription)}
}

func (m *mockSubscriptionRepo) Create(_ context.Context, s *Subscription) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	m.subs[s.ID] = s
	return nil
}

func (m *mockSubscriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*Subscription, error) {
	s, ok := m.subs[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (m *mockSubscriptionRepo) Update(_ context.Context, s *Subscription) error {
	m.subs[s.ID] = s
	return nil
}

func (m *mockSubscriptionRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Subscription, int, error) {
	var result []*Subscription
	for _, s := range m.subs {
		if s.PatientID == patientID {
			result = append(result, s)
		}
	}
	return result, len(result), nil
}

func (m *mockSubscriptionRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, s := range m.subs {
		if s.Status == SubscriptionActive && s.EndDate.Before(now) {
			s.Status = SubscriptionExpired
			n++
		}
	}
	return n, nil
}

func newTestService() (*Service, *mockSubscriptionRepo) {
	subs := newMockSubscriptionRepo()
	return NewService(newMockPlanRepo(), subs), subs
}

func validPlan() *Plan {
	return &Plan{Name: "Monthly", AmountCents: 150000, DurationDays: 30}
}

func TestService_CreatePlan_Defaults(t *testing.T) {
	svc, _ := newTestService()
	p := validPlan()
	if err := svc.CreatePlan(nil, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Currency != "KES" {
		t.Errorf("Currency = %q, want %q", p.Currency, "KES")
	}
	if !p.Active {
		t.Error("expected new plan to be active")
	}
}

func TestService_CreatePlan_InvalidDuration(t *testing.T) {
	svc, _ := newTestService()
	p := validPlan()
	p.DurationDays = 0
	if err := svc.CreatePlan(nil, p); err == nil {
		t.Error("expected error for zero duration_days")
	}
}

func TestService_Subscribe(t *testing.T) {
	svc, _ := newTestService()
	p := validPlan()
	if err := svc.CreatePlan(nil, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patientID := uuid.New()
	sub, err := svc.Subscribe(nil, patientID, p.ID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != SubscriptionActive {
		t.Errorf("Status = %q, want %q", sub.Status, SubscriptionActive)
	}
	wantEnd := sub.StartDate.AddDate(0, 0, p.DurationDays)
	if !sub.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", sub.EndDate, wantEnd)
	}
	if !sub.AutoRenew {
		t.Error("expected auto_renew to be set")
	}
}

func TestService_Subscribe_UnknownPlan(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Subscribe(nil, uuid.New(), uuid.New(), false); err == nil {
		t.Error("expected error for unknown plan")
	}
}

func TestService_Subscribe_InactivePlan(t *testing.T) {
	svc, _ := newTestService()
	p := validPlan()
	if err := svc.CreatePlan(nil, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.Active = false
	if err := svc.UpdatePlan(nil, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Subscribe(nil, uuid.New(), p.ID, false); err == nil {
		t.Error("expected error for inactive plan")
	}
}

func TestService_GetSubscription_LazyExpiry(t *testing.T) {
	svc, subs := newTestService()
	p := validPlan()
	if err := svc.CreatePlan(nil, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub, err := svc.Subscribe(nil, uuid.New(), p.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Backdate the window past its end.
	sub.StartDate = time.Now().AddDate(0, 0, -60)
	sub.EndDate = time.Now().AddDate(0, 0, -30)
	subs.subs[sub.ID] = sub

	got, err := svc.GetSubscription(nil, sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != SubscriptionExpired {
		t.Errorf("Status = %q, want %q", got.Status, SubscriptionExpired)
	}
}

func TestService_ExpireDueSubscriptions(t *testing.T) {
	svc, subs := newTestService()
	p := validPlan()
	if err := svc.CreatePlan(nil, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	overdue, err := svc.Subscribe(nil, uuid.New(), p.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	overdue.EndDate = time.Now().AddDate(0, 0, -1)
	subs.subs[overdue.ID] = overdue

	current, err := svc.Subscribe(nil, uuid.New(), p.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := svc.ExpireDueSubscriptions(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expired count = %d, want 1", n)
	}
	if subs.subs[overdue.ID].Status != SubscriptionExpired {
		t.Errorf("overdue Status = %q, want %q", subs.subs[overdue.ID].Status, SubscriptionExpired)
	}
	if subs.subs[current.ID].Status != SubscriptionActive {
		t.Errorf("current Status = %q, want %q", subs.subs[current.ID].Status, SubscriptionActive)
	}
}

func TestService_CancelSubscription(t *testing.T) {
	svc, _ := newTestService()
	p := validPlan()
	if err := svc.CreatePlan(nil, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub, err := svc.Subscribe(nil, uuid.New(), p.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.CancelSubscription(nil, sub.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != SubscriptionCancelled {
		t.Errorf("Status = %q, want %q", got.Status, SubscriptionCancelled)
	}
}
