package cdss

import (
	"context"

	"github.com/google/uuid"
)

// AssessmentRepository persists completed clinical risk assessments.
type AssessmentRepository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	List(ctx context.Context, limit, offset int) ([]*Assessment, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
}
