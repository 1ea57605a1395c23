package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Active           bool       `db:"active" json:"active"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	Email            string     `db:"email" json:"email"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	BirthDate        *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	AddressLine1     *string    `db:"address_line1" json:"address_line1,omitempty"`
	City             *string    `db:"city" json:"city,omitempty"`
	Country          *string    `db:"country" json:"country,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	BloodGroup       *string    `db:"blood_group" json:"blood_group,omitempty"`
	Allergies        *string    `db:"allergies" json:"allergies,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
