// Package odontogram holds the dental chart aggregate: odontograms and the
// per-tooth diagnostic condition records attached to them. Condition records
// are append-only; a correction is a new record with a later created date.
package odontogram

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/odonto/odonto/internal/domain/catalog"
)

// Odontogram is one dental chart owned by a patient.
type Odontogram struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	CreatedDate time.Time `db:"created_date" json:"created_date"`
}

// ToothCondition is a single diagnostic finding attached to one tooth or a
// tooth range. CreatedDate is set once at creation and never changes.
type ToothCondition struct {
	ID            uuid.UUID               `db:"id" json:"id"`
	OdontogramID  uuid.UUID               `db:"odontogram_id" json:"odontogram_id"`
	ToothNumber   int                     `db:"tooth_number" json:"tooth_number"`
	RangeEndTooth *int                    `db:"range_end_tooth" json:"range_end_tooth,omitempty"`
	Surfaces      []catalog.Surface       `db:"surfaces" json:"surfaces"`
	ConditionType catalog.ConditionType   `db:"condition_type" json:"condition_type"`
	Status        catalog.TreatmentStatus `db:"status" json:"status"`
	Notes         *string                 `db:"notes" json:"notes,omitempty"`
	Cost          *float64                `db:"cost" json:"cost,omitempty"`
	CreatedDate   time.Time               `db:"created_date" json:"created_date"`
}

// ToothDescriptor renders the tooth column value: "11-13" for a range record,
// the bare tooth number otherwise.
func (c *ToothCondition) ToothDescriptor() string {
	if c.RangeEndTooth != nil {
		return fmt.Sprintf("%d-%d", c.ToothNumber, *c.RangeEndTooth)
	}
	return fmt.Sprintf("%d", c.ToothNumber)
}

// NormalizeSurfaces collapses duplicate surfaces in place, keeping first-seen
// order. The surface set is order-insensitive; first-seen order just keeps
// the stored value deterministic.
func (c *ToothCondition) NormalizeSurfaces() {
	seen := make(map[catalog.Surface]bool, len(c.Surfaces))
	out := c.Surfaces[:0]
	for _, s := range c.Surfaces {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	c.Surfaces = out
}

// HasSurface reports whether s is in the condition's surface set.
func (c *ToothCondition) HasSurface(s catalog.Surface) bool {
	for _, v := range c.Surfaces {
		if v == s {
			return true
		}
	}
	return false
}

// Validate checks the record against the persistence invariants. Range
// ordering relative to the start tooth is deliberately not checked; only
// structural validity is.
func (c *ToothCondition) Validate() error {
	c.NormalizeSurfaces()
	if len(c.Surfaces) == 0 {
		return &ValidationError{Field: "surfaces", Message: "at least one surface is required"}
	}
	if !catalog.ValidToothNumber(c.ToothNumber) {
		return &ValidationError{Field: "tooth_number", Message: fmt.Sprintf("%d is not a valid arch position", c.ToothNumber)}
	}
	if c.ConditionType == "" {
		return &ValidationError{Field: "condition_type", Message: "condition type is required"}
	}
	if !catalog.ValidStatus(c.Status) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)}
	}
	if c.Cost != nil && *c.Cost < 0 {
		return &ValidationError{Field: "cost", Message: "cost must not be negative"}
	}
	return nil
}
