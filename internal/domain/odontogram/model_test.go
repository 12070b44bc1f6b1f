package odontogram

import (
	"errors"
	"testing"

	"github.com/odonto/odonto/internal/domain/catalog"
)

func validCondition() *ToothCondition {
	return &ToothCondition{
		ToothNumber:   11,
		Surfaces:      []catalog.Surface{catalog.SurfaceOcclusal},
		ConditionType: catalog.ConditionCaries,
		Status:        catalog.StatusPlanned,
	}
}

func TestToothDescriptor_SingleTooth(t *testing.T) {
	c := validCondition()
	if got := c.ToothDescriptor(); got != "11" {
		t.Errorf("descriptor = %q, want \"11\"", got)
	}
}

func TestToothDescriptor_Range(t *testing.T) {
	c := validCondition()
	end := 13
	c.RangeEndTooth = &end
	if got := c.ToothDescriptor(); got != "11-13" {
		t.Errorf("descriptor = %q, want \"11-13\"", got)
	}
}

func TestNormalizeSurfaces_KeepsFirstSeenOrder(t *testing.T) {
	c := validCondition()
	c.Surfaces = []catalog.Surface{
		catalog.SurfaceMesial, catalog.SurfaceOcclusal,
		catalog.SurfaceMesial, catalog.SurfaceOcclusal,
	}
	c.NormalizeSurfaces()
	want := []catalog.Surface{catalog.SurfaceMesial, catalog.SurfaceOcclusal}
	if len(c.Surfaces) != len(want) {
		t.Fatalf("got %d surfaces, want %d", len(c.Surfaces), len(want))
	}
	for i := range want {
		if c.Surfaces[i] != want[i] {
			t.Errorf("surfaces[%d] = %q, want %q", i, c.Surfaces[i], want[i])
		}
	}
}

func TestValidate_EmptySurfaces(t *testing.T) {
	c := validCondition()
	c.Surfaces = nil
	err := c.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "surfaces" {
		t.Errorf("field = %q, want surfaces", verr.Field)
	}
}

func TestValidate_BadToothNumber(t *testing.T) {
	for _, n := range []int{0, 9, 19, 29, 56, 99, -11} {
		c := validCondition()
		c.ToothNumber = n
		if err := c.Validate(); err == nil {
			t.Errorf("tooth %d: expected error", n)
		}
	}
}

func TestValidate_ValidToothNumbers(t *testing.T) {
	for _, n := range []int{11, 18, 21, 28, 31, 38, 41, 48, 51, 55, 61, 65, 71, 75, 81, 85} {
		c := validCondition()
		c.ToothNumber = n
		if err := c.Validate(); err != nil {
			t.Errorf("tooth %d: unexpected error %v", n, err)
		}
	}
}

func TestValidate_MissingConditionType(t *testing.T) {
	c := validCondition()
	c.ConditionType = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing condition type")
	}
}

func TestValidate_NegativeCost(t *testing.T) {
	c := validCondition()
	cost := -10.0
	c.Cost = &cost
	if err := c.Validate(); err == nil {
		t.Error("expected error for negative cost")
	}
}

func TestValidate_RangeOrderingNotChecked(t *testing.T) {
	c := validCondition()
	end := 3
	c.RangeEndTooth = &end
	if err := c.Validate(); err != nil {
		t.Errorf("range ordering should not be validated, got %v", err)
	}
}

func TestHasSurface(t *testing.T) {
	c := validCondition()
	if !c.HasSurface(catalog.SurfaceOcclusal) {
		t.Error("expected occlusal to be present")
	}
	if c.HasSurface(catalog.SurfaceLingual) {
		t.Error("did not expect lingual")
	}
}
