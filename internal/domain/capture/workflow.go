// Package capture implements the diagnostic entry workflow: a modal session
// scoped to one selected tooth that collects surfaces, condition type,
// status, notes and cost, validates them on submit, and hands the finished
// record to the persistence collaborator. The workflow never writes a
// partial record: a rejected save leaves it open with all state intact.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/odonto/odonto/internal/domain/catalog"
	"github.com/odonto/odonto/internal/domain/odontogram"
	"github.com/odonto/odonto/internal/platform/notification"
)

// State is the workflow lifecycle position.
type State string

const (
	StateOpen       State = "open"
	StateSubmitting State = "submitting"
	StateClosed     State = "closed"
)

// ErrNotOpen is returned when an edit or submit hits a workflow that is no
// longer open.
var ErrNotOpen = fmt.Errorf("capture workflow is not open")

// minConditionTypeLen is the shortest accepted condition type id.
const minConditionTypeLen = 3

// Saver is the persistence collaborator the workflow submits to.
type Saver interface {
	SaveCondition(ctx context.Context, c *odontogram.ToothCondition) error
}

// Workflow is one open capture session. The tooth is fixed at open time; the
// surface set is seeded from the surfaces already attached to that tooth.
// Workflow is not safe for concurrent use; the Manager serializes access.
type Workflow struct {
	ID            uuid.UUID               `json:"id"`
	OdontogramID  uuid.UUID               `json:"odontogram_id"`
	ToothNumber   int                     `json:"tooth_number"`
	RangeEndTooth *int                    `json:"range_end_tooth,omitempty"`
	Surfaces      []catalog.Surface       `json:"surfaces"`
	ConditionType string                  `json:"condition_type"`
	Status        catalog.TreatmentStatus `json:"status"`
	Notes         string                  `json:"notes"`
	Cost          *float64                `json:"cost,omitempty"`
	State         State                   `json:"state"`

	now func() time.Time
}

// Open starts a workflow for one tooth. Default status is planned.
func Open(odontogramID uuid.UUID, tooth int, defaultSurfaces []catalog.Surface) *Workflow {
	surfaces := make([]catalog.Surface, len(defaultSurfaces))
	copy(surfaces, defaultSurfaces)
	return &Workflow{
		ID:           uuid.New(),
		OdontogramID: odontogramID,
		ToothNumber:  tooth,
		Surfaces:     surfaces,
		Status:       catalog.StatusPlanned,
		State:        StateOpen,
		now:          time.Now,
	}
}

// SetClock replaces the workflow clock, for tests.
func (w *Workflow) SetClock(now func() time.Time) { w.now = now }

// ToggleSurface flips membership of s in the surface set: present is removed,
// absent is appended. No minimum is enforced until submit.
func (w *Workflow) ToggleSurface(s catalog.Surface) error {
	if w.State != StateOpen {
		return ErrNotOpen
	}
	for i, v := range w.Surfaces {
		if v == s {
			w.Surfaces = append(w.Surfaces[:i], w.Surfaces[i+1:]...)
			return nil
		}
	}
	w.Surfaces = append(w.Surfaces, s)
	return nil
}

// SetConditionType records the chosen condition id. Validated on submit.
func (w *Workflow) SetConditionType(id string) error {
	if w.State != StateOpen {
		return ErrNotOpen
	}
	w.ConditionType = id
	return nil
}

// SetStatus records the treatment status; only the three known statuses pass.
func (w *Workflow) SetStatus(s catalog.TreatmentStatus) error {
	if w.State != StateOpen {
		return ErrNotOpen
	}
	if !catalog.ValidStatus(s) {
		return &odontogram.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
	}
	w.Status = s
	return nil
}

// SetNotes records free-text notes.
func (w *Workflow) SetNotes(notes string) error {
	if w.State != StateOpen {
		return ErrNotOpen
	}
	w.Notes = notes
	return nil
}

// SetCost records the estimated cost; negative amounts are rejected.
func (w *Workflow) SetCost(cost float64) error {
	if w.State != StateOpen {
		return ErrNotOpen
	}
	if cost < 0 {
		return &odontogram.ValidationError{Field: "cost", Message: "cost must not be negative"}
	}
	w.Cost = &cost
	return nil
}

// SetRangeEnd records the end tooth of a multi-tooth condition. Ordering
// relative to the start tooth is not checked here.
func (w *Workflow) SetRangeEnd(tooth int) error {
	if w.State != StateOpen {
		return ErrNotOpen
	}
	w.RangeEndTooth = &tooth
	return nil
}

// BeginSubmit validates the collected state, builds the condition record
// with the creation timestamp, and moves the workflow to submitting so no
// other caller can edit, resubmit or cancel it while the save is in flight.
// On validation failure the workflow stays open and nothing changes. The
// state transition must happen under the Manager lock: callers go through
// Manager.Mutate.
func (w *Workflow) BeginSubmit() (*odontogram.ToothCondition, error) {
	if w.State != StateOpen {
		return nil, ErrNotOpen
	}

	if len(w.Surfaces) == 0 {
		return nil, &odontogram.ValidationError{Field: "surfaces", Message: "select at least one surface"}
	}
	if len(w.ConditionType) < minConditionTypeLen {
		return nil, &odontogram.ValidationError{Field: "condition_type", Message: "select a condition"}
	}

	cond := &odontogram.ToothCondition{
		OdontogramID:  w.OdontogramID,
		ToothNumber:   w.ToothNumber,
		RangeEndTooth: w.RangeEndTooth,
		Surfaces:      append([]catalog.Surface(nil), w.Surfaces...),
		ConditionType: catalog.ConditionType(w.ConditionType),
		Status:        w.Status,
		CreatedDate:   w.now(),
	}
	if w.Notes != "" {
		notes := w.Notes
		cond.Notes = &notes
	}
	cond.Cost = w.Cost

	w.State = StateSubmitting
	return cond, nil
}

// FinishSubmit records the outcome of the persistence call started by
// BeginSubmit. A save rejection reopens the workflow with state preserved so
// the operator can correct and retry, and emits an error toast; success
// closes it and emits a success toast. Like BeginSubmit, callers route this
// through Manager.Mutate.
func (w *Workflow) FinishSubmit(cond *odontogram.ToothCondition, saveErr error, notifier notification.Notifier) error {
	if w.State != StateSubmitting {
		return ErrNotOpen
	}
	if saveErr != nil {
		w.State = StateOpen
		notifier.Error("Could not save the diagnosis. Please try again.")
		return &odontogram.PersistenceError{Op: "save condition", Err: saveErr}
	}

	w.State = StateClosed
	notifier.Success(fmt.Sprintf("Diagnosis recorded for tooth %s", cond.ToothDescriptor()))
	return nil
}

// Submit runs the full begin/save/finish sequence in one call, for callers
// that own the workflow exclusively. Once the persistence call starts it
// cannot be aborted.
func (w *Workflow) Submit(ctx context.Context, saver Saver, notifier notification.Notifier) (*odontogram.ToothCondition, error) {
	cond, err := w.BeginSubmit()
	if err != nil {
		return nil, err
	}
	if err := w.FinishSubmit(cond, saver.SaveCondition(ctx, cond), notifier); err != nil {
		return nil, err
	}
	return cond, nil
}

// Cancel discards all in-progress state and closes the workflow. A workflow
// with a save in flight cannot be cancelled.
func (w *Workflow) Cancel() error {
	if w.State == StateSubmitting {
		return ErrNotOpen
	}
	w.Surfaces = nil
	w.ConditionType = ""
	w.Notes = ""
	w.Cost = nil
	w.RangeEndTooth = nil
	w.State = StateClosed
	return nil
}
