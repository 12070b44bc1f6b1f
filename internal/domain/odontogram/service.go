package odontogram

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service coordinates odontogram reads and appends. Condition validation
// happens here before the repository is touched, so a rejected record never
// reaches storage.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetClock replaces the service clock, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) CreateOdontogram(ctx context.Context, o *Odontogram) error {
	if o.PatientID == uuid.Nil {
		return &ValidationError{Field: "patient_id", Message: "patient_id is required"}
	}
	if o.Name == "" {
		o.Name = "Odontogram " + s.now().Format("02/01/2006")
	}
	if err := s.repo.CreateOdontogram(ctx, o); err != nil {
		return &PersistenceError{Op: "create odontogram", Err: err}
	}
	return nil
}

func (s *Service) GetOdontogram(ctx context.Context, id uuid.UUID) (*Odontogram, error) {
	return s.repo.GetOdontogram(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Odontogram, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// AddCondition validates and appends one condition record. CreatedDate is
// stamped here when unset so that successive adds carry non-decreasing
// timestamps.
func (s *Service) AddCondition(ctx context.Context, c *ToothCondition) error {
	if c.OdontogramID == uuid.Nil {
		return &ValidationError{Field: "odontogram_id", Message: "odontogram_id is required"}
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CreatedDate.IsZero() {
		c.CreatedDate = s.now()
	}
	if err := s.repo.AddCondition(ctx, c); err != nil {
		return &PersistenceError{Op: "add condition", Err: err}
	}
	return nil
}

// SaveCondition implements the capture workflow's save collaborator.
func (s *Service) SaveCondition(ctx context.Context, c *ToothCondition) error {
	return s.AddCondition(ctx, c)
}

// ConditionStore loads the full condition set of one odontogram into a
// session store, insertion order preserved.
func (s *Service) ConditionStore(ctx context.Context, odontogramID uuid.UUID) (*ConditionStore, error) {
	conds, err := s.repo.ConditionsByOdontogram(ctx, odontogramID)
	if err != nil {
		return nil, fmt.Errorf("load conditions: %w", err)
	}
	return NewConditionStoreFrom(conds)
}

// ConditionsForTooth returns the conditions attached to one tooth, oldest
// first.
func (s *Service) ConditionsForTooth(ctx context.Context, odontogramID uuid.UUID, tooth int) ([]*ToothCondition, error) {
	return s.repo.ConditionsByTooth(ctx, odontogramID, tooth)
}

// AttachedSurfaces returns the union of surfaces already recorded on a tooth,
// first-seen order. The capture workflow seeds its surface set from this.
func (s *Service) AttachedSurfaces(ctx context.Context, odontogramID uuid.UUID, tooth int) ([]string, error) {
	conds, err := s.repo.ConditionsByTooth(ctx, odontogramID, tooth)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, c := range conds {
		for _, surf := range c.Surfaces {
			if !seen[string(surf)] {
				seen[string(surf)] = true
				out = append(out, string(surf))
			}
		}
	}
	return out, nil
}
