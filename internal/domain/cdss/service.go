package cdss

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	assessments AssessmentRepository
}

func NewService(assessments AssessmentRepository) *Service {
	return &Service{assessments: assessments}
}

var validGenders = map[string]bool{
	GenderMale: true, GenderFemale: true, GenderOther: true,
}

// CreateAssessment validates the input, runs the scorer and persists the
// resulting record. Validation happens here because Score itself assumes
// well-formed input and does not guard against a zero height.
func (s *Service) CreateAssessment(ctx context.Context, patientID *uuid.UUID, in ClinicalInput) (*Assessment, error) {
	if in.Age <= 0 {
		return nil, fmt.Errorf("age is required")
	}
	if in.Gender == "" {
		return nil, fmt.Errorf("gender is required")
	}
	if !validGenders[in.Gender] {
		return nil, fmt.Errorf("invalid gender: %s", in.Gender)
	}
	if in.WeightKG <= 0 {
		return nil, fmt.Errorf("weight_kg is required")
	}
	if in.HeightCM <= 0 {
		return nil, fmt.Errorf("height_cm is required")
	}

	result := Score(in)

	a := &Assessment{
		PatientID:           patientID,
		Input:               in,
		Analysis:            result.Analysis,
		Recommendations:     result.Recommendations,
		RiskLevel:           result.RiskLevel,
		BMI:                 result.BMI,
		BMICategory:         result.BMICategory,
		BloodPressureStatus: result.BloodPressureStatus,
		BloodSugarStatus:    result.BloodSugarStatus,
		HeartRateStatus:     result.HeartRateStatus,
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *Service) ListAssessments(ctx context.Context, limit, offset int) ([]*Assessment, int, error) {
	return s.assessments.List(ctx, limit, offset)
}

func (s *Service) ListAssessmentsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.assessments.ListByPatient(ctx, patientID, limit, offset)
}
