package odontogram

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists odontograms and their condition records. Conditions are
// append-only; there is no update or delete on them.
type Repository interface {
	CreateOdontogram(ctx context.Context, o *Odontogram) error
	GetOdontogram(ctx context.Context, id uuid.UUID) (*Odontogram, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Odontogram, int, error)

	AddCondition(ctx context.Context, c *ToothCondition) error
	ConditionsByOdontogram(ctx context.Context, odontogramID uuid.UUID) ([]*ToothCondition, error)
	ConditionsByTooth(ctx context.Context, odontogramID uuid.UUID, tooth int) ([]*ToothCondition, error)
}
