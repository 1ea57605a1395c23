package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Active            bool       `db:"active" json:"active"`
	FirstName         string     `db:"first_name" json:"first_name"`
	LastName          string     `db:"last_name" json:"last_name"`
	Email             string     `db:"email" json:"email"`
	Phone             *string    `db:"phone" json:"phone,omitempty"`
	Specialization    string     `db:"specialization" json:"specialization"`
	LicenseNumber     string     `db:"license_number" json:"license_number"`
	Bio               *string    `db:"bio" json:"bio,omitempty"`
	YearsOfExperience *int       `db:"years_of_experience" json:"years_of_experience,omitempty"`
	ConsultationFee   *int64     `db:"consultation_fee" json:"consultation_fee,omitempty"`
	Verified          bool       `db:"verified" json:"verified"`
	VerifiedAt        *time.Time `db:"verified_at" json:"verified_at,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// DoctorAvailability is a weekly recurring slot, times as "HH:MM".
type DoctorAvailability struct {
	ID        uuid.UUID `db:"id" json:"id"`
	DoctorID  uuid.UUID `db:"doctor_id" json:"doctor_id"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
