package odontogram

import "fmt"

// ValidationError reports a rejected field on a condition record or capture
// submission. Recovered locally: the offending field is re-displayed, nothing
// is persisted.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PersistenceError wraps a rejection from the save collaborator. The caller's
// in-progress state must survive it so the operator can retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
