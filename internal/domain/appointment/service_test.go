package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	appointments map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appointments: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appointments[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.appointments[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.appointments, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appointments {
		result = append(result, a)
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appointments {
		if a.DoctorID == doctorID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func validAppointment() *Appointment {
	start := time.Now().Add(24 * time.Hour)
	return &Appointment{
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
}

func TestService_Create_DefaultsToRequested(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	if err := svc.Create(nil, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusRequested {
		t.Errorf("Status = %q, want %q", a.Status, StatusRequested)
	}
}

func TestService_Create_EndBeforeStart(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.EndTime = a.StartTime.Add(-time.Minute)
	if err := svc.Create(nil, a); err == nil {
		t.Error("expected error for end before start")
	}
}

func TestService_Create_InvalidStatus(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.Status = "booked"
	if err := svc.Create(nil, a); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestService_Create_MissingPatient(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.PatientID = uuid.Nil
	if err := svc.Create(nil, a); err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestService_Cancel(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	if err := svc.Create(nil, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Cancel(nil, a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Errorf("Status = %q, want %q", got.Status, StatusCancelled)
	}

	// Idempotent.
	if _, err := svc.Cancel(nil, a.ID); err != nil {
		t.Errorf("repeat cancel should succeed: %v", err)
	}
}

func TestService_Cancel_CompletedRejected(t *testing.T) {
	svc := newTestService()
	a := validAppointment()
	a.Status = StatusConfirmed
	if err := svc.Create(nil, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a.Status = StatusCompleted
	if err := svc.Update(nil, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Cancel(nil, a.ID); err == nil {
		t.Error("expected error cancelling a completed appointment")
	}
}

func TestService_ListByDoctor(t *testing.T) {
	svc := newTestService()
	doctorID := uuid.New()
	a := validAppointment()
	a.DoctorID = doctorID
	if err := svc.Create(nil, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Create(nil, validAppointment()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, total, err := svc.ListByDoctor(nil, doctorID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("expected 1 appointment for doctor, got %d (total %d)", len(items), total)
	}
}
