package catalog

import "testing"

func TestConditionCatalogSize(t *testing.T) {
	if len(Conditions) != 11 {
		t.Fatalf("expected 11 condition types, got %d", len(Conditions))
	}
}

func TestConditionCatalogOrderStable(t *testing.T) {
	if Conditions[0].ID != ConditionCaries {
		t.Errorf("expected caries first, got %s", Conditions[0].ID)
	}
	if Conditions[len(Conditions)-1].ID != ConditionDefectiveRestoration {
		t.Errorf("expected defective_restoration last, got %s", Conditions[len(Conditions)-1].ID)
	}
}

func TestLookupCondition(t *testing.T) {
	e, ok := LookupCondition(ConditionCaries)
	if !ok {
		t.Fatal("expected caries to be in the catalog")
	}
	if e.Label != "Caries" {
		t.Errorf("expected label 'Caries', got %s", e.Label)
	}
	if e.Glyph != "C" {
		t.Errorf("expected glyph 'C', got %s", e.Glyph)
	}

	if _, ok := LookupCondition("gingivitis"); ok {
		t.Error("expected unknown id to miss")
	}
}

func TestConditionLabelFallback(t *testing.T) {
	if got := ConditionLabel("mystery"); got != "mystery" {
		t.Errorf("expected raw fallback 'mystery', got %s", got)
	}
}

func TestSurfaceCodes(t *testing.T) {
	cases := map[Surface]string{
		SurfaceOcclusal: "O",
		SurfaceMesial:   "M",
		SurfaceDistal:   "D",
		SurfaceBuccal:   "B",
		SurfaceLingual:  "L",
	}
	for s, want := range cases {
		if got := SurfaceCode(s); got != want {
			t.Errorf("SurfaceCode(%s) = %s, want %s", s, got, want)
		}
	}
}

func TestSurfaceCodeFallback(t *testing.T) {
	if got := SurfaceCode("palatal"); got != "palatal" {
		t.Errorf("expected raw fallback 'palatal', got %s", got)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []TreatmentStatus{StatusPlanned, StatusInProgress, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidStatus("done") {
		t.Error("expected 'done' to be invalid")
	}
}

func TestValidToothNumber(t *testing.T) {
	valid := []int{11, 18, 21, 28, 31, 38, 41, 48, 51, 55, 61, 75, 85}
	for _, n := range valid {
		if !ValidToothNumber(n) {
			t.Errorf("expected %d to be a valid arch position", n)
		}
	}
	invalid := []int{0, -14, 10, 19, 29, 49, 50, 56, 86, 90, 114}
	for _, n := range invalid {
		if ValidToothNumber(n) {
			t.Errorf("expected %d to be invalid", n)
		}
	}
}
