package odontogram

import (
	"testing"
	"time"

	"github.com/odonto/odonto/internal/domain/catalog"
)

func conditionOn(tooth int, ct catalog.ConditionType) *ToothCondition {
	return &ToothCondition{
		ToothNumber:   tooth,
		Surfaces:      []catalog.Surface{catalog.SurfaceOcclusal},
		ConditionType: ct,
		Status:        catalog.StatusPlanned,
	}
}

func TestStore_AddAndRetrieve(t *testing.T) {
	s := NewConditionStore()
	if err := s.Add(conditionOn(11, catalog.ConditionCaries)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(conditionOn(11, catalog.ConditionCrown)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(conditionOn(24, catalog.ConditionExtraction)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}

	conds := s.ConditionsFor(11)
	if len(conds) != 2 {
		t.Fatalf("expected 2 conditions on tooth 11, got %d", len(conds))
	}
	if conds[0].ConditionType != catalog.ConditionCaries {
		t.Errorf("first condition = %q, want caries", conds[0].ConditionType)
	}
	if conds[1].ConditionType != catalog.ConditionCrown {
		t.Errorf("second condition = %q, want crown", conds[1].ConditionType)
	}

	if got := s.ConditionsFor(48); len(got) != 0 {
		t.Errorf("expected empty slice for untouched tooth, got %d", len(got))
	}
}

func TestStore_RejectsInvalid(t *testing.T) {
	s := NewConditionStore()
	bad := conditionOn(11, catalog.ConditionCaries)
	bad.Surfaces = nil
	if err := s.Add(bad); err == nil {
		t.Fatal("expected validation error")
	}
	if s.Len() != 0 {
		t.Errorf("rejected record must not be stored, Len = %d", s.Len())
	}
}

func TestStore_InsertionOrderAcrossTeeth(t *testing.T) {
	s := NewConditionStore()
	order := []struct {
		tooth int
		ct    catalog.ConditionType
	}{
		{24, catalog.ConditionCaries},
		{11, catalog.ConditionCrown},
		{24, catalog.ConditionFracture},
		{36, catalog.ConditionImplant},
	}
	for _, o := range order {
		if err := s.Add(conditionOn(o.tooth, o.ct)); err != nil {
			t.Fatal(err)
		}
	}

	all := s.AllConditions()
	for i, o := range order {
		if all[i].ToothNumber != o.tooth || all[i].ConditionType != o.ct {
			t.Errorf("all[%d] = tooth %d %q, want tooth %d %q",
				i, all[i].ToothNumber, all[i].ConditionType, o.tooth, o.ct)
		}
	}

	teeth := s.Teeth()
	wantTeeth := []int{24, 11, 36}
	if len(teeth) != len(wantTeeth) {
		t.Fatalf("Teeth = %v, want %v", teeth, wantTeeth)
	}
	for i := range wantTeeth {
		if teeth[i] != wantTeeth[i] {
			t.Errorf("Teeth[%d] = %d, want %d", i, teeth[i], wantTeeth[i])
		}
	}
}

func TestStore_NoResortingByDate(t *testing.T) {
	s := NewConditionStore()
	later := conditionOn(11, catalog.ConditionCaries)
	later.CreatedDate = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	earlier := conditionOn(11, catalog.ConditionCrown)
	earlier.CreatedDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Add(later); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(earlier); err != nil {
		t.Fatal(err)
	}

	all := s.AllConditions()
	if all[0] != later || all[1] != earlier {
		t.Error("conditions must stay in insertion order, not date order")
	}
}

func TestStore_ReturnedSlicesAreCopies(t *testing.T) {
	s := NewConditionStore()
	if err := s.Add(conditionOn(11, catalog.ConditionCaries)); err != nil {
		t.Fatal(err)
	}
	all := s.AllConditions()
	all[0] = nil
	if s.AllConditions()[0] == nil {
		t.Error("mutating the returned slice must not affect the store")
	}
}

func TestNewConditionStoreFrom(t *testing.T) {
	conds := []*ToothCondition{
		conditionOn(11, catalog.ConditionCaries),
		conditionOn(12, catalog.ConditionCrown),
	}
	s, err := NewConditionStoreFrom(conds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	conds[0].Surfaces = nil
	if _, err := NewConditionStoreFrom(conds); err == nil {
		t.Error("expected error from invalid pre-loaded condition")
	}
}
