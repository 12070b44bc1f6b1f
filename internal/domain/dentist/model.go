// Package dentist covers the clinic staff side of charting: dentist profiles
// and the appointment lookup that finds which dentist a patient's next active
// visit is booked with.
package dentist

import (
	"time"

	"github.com/google/uuid"
)

// Dentist is one practitioner profile.
type Dentist struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Appointment is the slice of the scheduling record this module reads. Rows
// are written by the external appointment system; this module only queries
// them.
type Appointment struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	PatientID         uuid.UUID  `db:"patient_id" json:"patient_id"`
	DentistID         *uuid.UUID `db:"dentist_id" json:"dentist_id,omitempty"`
	Date              time.Time  `db:"date" json:"date"`
	Time              string     `db:"time" json:"time"`
	Status            string     `db:"status" json:"status"`
	StatusAppointment string     `db:"status_appointment" json:"status_appointment"`
}
