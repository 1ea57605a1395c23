package consultation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	consultations Repository
}

func NewService(consultations Repository) *Service {
	return &Service{consultations: consultations}
}

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusInProgress: true,
	StatusCompleted: true, StatusCancelled: true,
}

func (s *Service) Create(ctx context.Context, cons *Consultation) error {
	if cons.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if cons.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if cons.Status == "" {
		cons.Status = StatusScheduled
	}
	if !validStatuses[cons.Status] {
		return fmt.Errorf("invalid consultation status: %s", cons.Status)
	}
	if cons.RoomName == "" {
		cons.RoomName = "consult-" + uuid.New().String()
	}
	return s.consultations.Create(ctx, cons)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return s.consultations.GetByID(ctx, id)
}

// Start moves a scheduled consultation to in-progress and stamps the start
// time.
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	cons, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cons.Status != StatusScheduled {
		return nil, fmt.Errorf("cannot start a %s consultation", cons.Status)
	}
	now := time.Now()
	cons.Status = StatusInProgress
	cons.StartedAt = &now
	if err := s.consultations.Update(ctx, cons); err != nil {
		return nil, err
	}
	return cons, nil
}

// End completes an in-progress consultation and records its duration.
func (s *Service) End(ctx context.Context, id uuid.UUID, notes *string) (*Consultation, error) {
	cons, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cons.Status != StatusInProgress {
		return nil, fmt.Errorf("cannot end a %s consultation", cons.Status)
	}
	now := time.Now()
	cons.Status = StatusCompleted
	cons.EndedAt = &now
	if cons.StartedAt != nil {
		secs := int(now.Sub(*cons.StartedAt).Seconds())
		cons.DurationSeconds = &secs
	}
	if notes != nil {
		cons.Notes = notes
	}
	if err := s.consultations.Update(ctx, cons); err != nil {
		return nil, err
	}
	return cons, nil
}

// UpdateNotes replaces the clinical note on a consultation. Cancelled
// sessions are read-only.
func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*Consultation, error) {
	cons, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cons.Status == StatusCancelled {
		return nil, fmt.Errorf("cannot update notes on a cancelled consultation")
	}
	cons.Notes = &notes
	if err := s.consultations.Update(ctx, cons); err != nil {
		return nil, err
	}
	return cons, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	cons, err := s.consultations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cons.Status == StatusCompleted {
		return nil, fmt.Errorf("cannot cancel a completed consultation")
	}
	if cons.Status == StatusCancelled {
		return cons, nil
	}
	cons.Status = StatusCancelled
	if err := s.consultations.Update(ctx, cons); err != nil {
		return nil, err
	}
	return cons, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	return s.consultations.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return s.consultations.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return s.consultations.ListByDoctor(ctx, doctorID, limit, offset)
}
