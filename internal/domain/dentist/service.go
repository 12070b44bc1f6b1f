package dentist

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/odonto/odonto/internal/domain/odontogram"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetClock replaces the service clock, for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// SaveProfile validates and persists a dentist profile.
func (s *Service) SaveProfile(ctx context.Context, d *Dentist) error {
	if d.FullName == "" {
		return &odontogram.ValidationError{Field: "full_name", Message: "full name is required"}
	}
	if err := s.repo.Save(ctx, d); err != nil {
		return &odontogram.PersistenceError{Op: "save dentist profile", Err: err}
	}
	return nil
}

func (s *Service) GetDentist(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListDentists(ctx context.Context, limit, offset int) ([]*Dentist, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// ApplicableDentist finds the dentist of the patient's next active
// appointment from today on.
func (s *Service) ApplicableDentist(ctx context.Context, patientID uuid.UUID) (uuid.UUID, bool, error) {
	today := s.now().Truncate(24 * time.Hour)
	return s.repo.FindApplicableForPatient(ctx, patientID, today)
}
