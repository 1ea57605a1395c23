package doctor

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	doctors      Repository
	availability AvailabilityRepository
}

func NewService(doctors Repository, availability AvailabilityRepository) *Service {
	return &Service{doctors: doctors, availability: availability}
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if d.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if d.Specialization == "" {
		return fmt.Errorf("specialization is required")
	}
	if d.LicenseNumber == "" {
		return fmt.Errorf("license_number is required")
	}
	d.Active = true
	// Verification is an explicit admin action, never set at creation.
	d.Verified = false
	d.VerifiedAt = nil
	return s.doctors.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Doctor, error) {
	return s.doctors.GetByEmail(ctx, email)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	current, err := s.doctors.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	// Updates cannot flip verification status.
	d.Verified = current.Verified
	d.VerifiedAt = current.VerifiedAt
	return s.doctors.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) ListBySpecialization(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListBySpecialization(ctx, specialization, limit, offset)
}

// Verify marks a doctor as license-verified. Idempotent.
func (s *Service) Verify(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Verified {
		return d, nil
	}
	now := time.Now()
	d.Verified = true
	d.VerifiedAt = &now
	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (s *Service) AddAvailability(ctx context.Context, a *DoctorAvailability) error {
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if a.DayOfWeek < 0 || a.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}
	if !timeOfDayRe.MatchString(a.StartTime) {
		return fmt.Errorf("start_time must be HH:MM")
	}
	if !timeOfDayRe.MatchString(a.EndTime) {
		return fmt.Errorf("end_time must be HH:MM")
	}
	if a.StartTime >= a.EndTime {
		return fmt.Errorf("start_time must be before end_time")
	}
	if _, err := s.doctors.GetByID(ctx, a.DoctorID); err != nil {
		return fmt.Errorf("doctor not found")
	}
	return s.availability.Create(ctx, a)
}

func (s *Service) RemoveAvailability(ctx context.Context, id uuid.UUID) error {
	return s.availability.Delete(ctx, id)
}

func (s *Service) ListAvailability(ctx context.Context, doctorID uuid.UUID) ([]*DoctorAvailability, error) {
	return s.availability.ListByDoctor(ctx, doctorID)
}
