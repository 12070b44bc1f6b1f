package dentist

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, d *Dentist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error)
	List(ctx context.Context, limit, offset int) ([]*Dentist, int, error)

	// FindApplicableForPatient returns the dentist assigned to the patient's
	// next upcoming active appointment: date >= from, status = active,
	// appointment status not cancelled, dentist assigned, ordered by date
	// then time ascending, limit 1. The bool is false when no appointment
	// qualifies.
	FindApplicableForPatient(ctx context.Context, patientID uuid.UUID, from time.Time) (uuid.UUID, bool, error)
}
