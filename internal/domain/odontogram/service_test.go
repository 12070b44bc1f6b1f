package odontogram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/odonto/odonto/internal/domain/catalog"
)

// mockRepo is an in-memory Repository for service tests.
type mockRepo struct {
	odontograms map[uuid.UUID]*Odontogram
	conditions  []*ToothCondition
	failNext    error
}

func newMockRepo() *mockRepo {
	return &mockRepo{odontograms: make(map[uuid.UUID]*Odontogram)}
}

func (m *mockRepo) takeErr() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *mockRepo) CreateOdontogram(_ context.Context, o *Odontogram) error {
	if err := m.takeErr(); err != nil {
		return err
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedDate.IsZero() {
		o.CreatedDate = time.Now()
	}
	m.odontograms[o.ID] = o
	return nil
}

func (m *mockRepo) GetOdontogram(_ context.Context, id uuid.UUID) (*Odontogram, error) {
	o, ok := m.odontograms[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Odontogram, int, error) {
	var items []*Odontogram
	for _, o := range m.odontograms {
		if o.PatientID == patientID {
			items = append(items, o)
		}
	}
	return items, len(items), nil
}

func (m *mockRepo) AddCondition(_ context.Context, c *ToothCondition) error {
	if err := m.takeErr(); err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.conditions = append(m.conditions, c)
	return nil
}

func (m *mockRepo) ConditionsByOdontogram(_ context.Context, odontogramID uuid.UUID) ([]*ToothCondition, error) {
	var out []*ToothCondition
	for _, c := range m.conditions {
		if c.OdontogramID == odontogramID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) ConditionsByTooth(_ context.Context, odontogramID uuid.UUID, tooth int) ([]*ToothCondition, error) {
	var out []*ToothCondition
	for _, c := range m.conditions {
		if c.OdontogramID == odontogramID && c.ToothNumber == tooth {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestCreateOdontogram_DefaultsName(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	svc.SetClock(func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	})

	o := &Odontogram{PatientID: uuid.New()}
	if err := svc.CreateOdontogram(context.Background(), o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Name != "Odontogram 15/03/2026" {
		t.Errorf("name = %q, want default with DD/MM/YYYY date", o.Name)
	}
}

func TestCreateOdontogram_RequiresPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.CreateOdontogram(context.Background(), &Odontogram{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddCondition_StampsCreatedDate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	stamp := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return stamp })

	c := conditionOn(11, catalog.ConditionCaries)
	c.OdontogramID = uuid.New()
	if err := svc.AddCondition(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.CreatedDate.Equal(stamp) {
		t.Errorf("created date = %v, want %v", c.CreatedDate, stamp)
	}
}

func TestAddCondition_PreservesExplicitDate(t *testing.T) {
	svc := NewService(newMockRepo())
	c := conditionOn(11, catalog.ConditionCaries)
	c.OdontogramID = uuid.New()
	explicit := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	c.CreatedDate = explicit

	if err := svc.AddCondition(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.CreatedDate.Equal(explicit) {
		t.Errorf("created date = %v, want %v", c.CreatedDate, explicit)
	}
}

func TestAddCondition_InvalidNeverReachesRepo(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	c := conditionOn(11, catalog.ConditionCaries)
	c.OdontogramID = uuid.New()
	c.Surfaces = nil
	if err := svc.AddCondition(context.Background(), c); err == nil {
		t.Fatal("expected validation error")
	}
	if len(repo.conditions) != 0 {
		t.Error("invalid record must not reach the repository")
	}
}

func TestAddCondition_WrapsRepoError(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	repo.failNext = errors.New("connection reset")

	c := conditionOn(11, catalog.ConditionCaries)
	c.OdontogramID = uuid.New()
	err := svc.AddCondition(context.Background(), c)

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if perr.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}

func TestConditionStore_RoundTrip(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	oid := uuid.New()

	for i, ct := range []catalog.ConditionType{
		catalog.ConditionCaries, catalog.ConditionCrown, catalog.ConditionFracture,
	} {
		c := conditionOn(11+i, ct)
		c.OdontogramID = oid
		if err := svc.AddCondition(context.Background(), c); err != nil {
			t.Fatal(err)
		}
	}

	store, err := svc.ConditionStore(context.Background(), oid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := store.AllConditions()
	if len(all) != 3 {
		t.Fatalf("expected 3 conditions, got %d", len(all))
	}
	if all[0].ConditionType != catalog.ConditionCaries || all[2].ConditionType != catalog.ConditionFracture {
		t.Error("round-trip must preserve insertion order")
	}
}

func TestAttachedSurfaces_UnionFirstSeen(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	oid := uuid.New()

	first := conditionOn(11, catalog.ConditionCaries)
	first.OdontogramID = oid
	first.Surfaces = []catalog.Surface{catalog.SurfaceMesial, catalog.SurfaceOcclusal}
	second := conditionOn(11, catalog.ConditionCrown)
	second.OdontogramID = oid
	second.Surfaces = []catalog.Surface{catalog.SurfaceOcclusal, catalog.SurfaceDistal}

	for _, c := range []*ToothCondition{first, second} {
		if err := svc.AddCondition(context.Background(), c); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.AttachedSurfaces(context.Background(), oid, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"mesial", "occlusal", "distal"}
	if len(got) != len(want) {
		t.Fatalf("surfaces = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("surfaces[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
