package consultation

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Consultation maps to the consultation table. A consultation is the video
// visit backing a confirmed appointment.
type Consultation struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	AppointmentID   *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID        uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Status          string     `db:"status" json:"status"`
	RoomName        string     `db:"room_name" json:"room_name"`
	StartedAt       *time.Time `db:"started_at" json:"started_at,omitempty"`
	EndedAt         *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	DurationSeconds *int       `db:"duration_seconds" json:"duration_seconds,omitempty"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
