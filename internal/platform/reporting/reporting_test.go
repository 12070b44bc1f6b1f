package reporting

import (
	"strings"
	"testing"
)

func TestPredefinedMeasures(t *testing.T) {
	if len(PredefinedMeasures) != 5 {
		t.Fatalf("expected 5 predefined measures, got %d", len(PredefinedMeasures))
	}

	expectedIDs := []string{
		"odontogram-count",
		"conditions-by-type",
		"conditions-by-status",
		"cost-by-status",
		"most-affected-teeth",
	}

	for i, expectedID := range expectedIDs {
		if PredefinedMeasures[i].ID != expectedID {
			t.Errorf("expected measure[%d].ID = %s, got %s", i, expectedID, PredefinedMeasures[i].ID)
		}
	}
}

func TestPredefinedMeasures_HaveSQL(t *testing.T) {
	for _, m := range PredefinedMeasures {
		if m.SQL == "" {
			t.Errorf("measure %s has empty SQL", m.ID)
		}
		if m.Name == "" {
			t.Errorf("measure %s has empty name", m.ID)
		}
		if m.Description == "" {
			t.Errorf("measure %s has empty description", m.ID)
		}
	}
}

func TestFindMeasure_Exists(t *testing.T) {
	m := FindMeasure("odontogram-count")
	if m == nil {
		t.Fatal("expected to find odontogram-count measure")
	}
	if m.Name != "Odontogram Count" {
		t.Errorf("expected 'Odontogram Count', got %s", m.Name)
	}
}

func TestFindMeasure_NotFound(t *testing.T) {
	m := FindMeasure("nonexistent")
	if m != nil {
		t.Error("expected nil for nonexistent measure")
	}
}

func TestFindMeasure_AllPredefined(t *testing.T) {
	for _, def := range PredefinedMeasures {
		found := FindMeasure(def.ID)
		if found == nil {
			t.Errorf("expected to find measure %s", def.ID)
		}
		if found != nil && found.ID != def.ID {
			t.Errorf("ID mismatch: expected %s, got %s", def.ID, found.ID)
		}
	}
}

func TestConditionMeasures_QueryToothConditionTable(t *testing.T) {
	for _, id := range []string{"conditions-by-type", "conditions-by-status", "cost-by-status", "most-affected-teeth"} {
		m := FindMeasure(id)
		if m == nil {
			t.Fatalf("expected %s measure", id)
		}
		if !strings.Contains(m.SQL, "tooth_condition") {
			t.Errorf("measure %s does not query tooth_condition: %s", id, m.SQL)
		}
	}
}

func TestCostMeasure_CoalescesNullCost(t *testing.T) {
	m := FindMeasure("cost-by-status")
	if m == nil {
		t.Fatal("expected cost-by-status measure")
	}
	if !strings.Contains(m.SQL, "COALESCE(SUM(cost), 0)") {
		t.Errorf("expected cost sum to coalesce nulls, got: %s", m.SQL)
	}
}

func TestNewHandler(t *testing.T) {
	h := NewHandler(nil)
	if h == nil {
		t.Fatal("expected non-nil handler")
	}
}
