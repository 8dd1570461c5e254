package scheduling

import (
	"fmt"

	"calendra/models"
)

// InvalidInputError reports a caller contract violation. It is raised
// synchronously before any store access and must never be retried.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Message
}

func invalidInputf(format string, args ...any) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that a candidate interval overlaps committed busy
// time for a required party. Overlapping carries the busy intervals the
// candidate collides with so the caller can explain why.
type ConflictError struct {
	UserID      string
	Overlapping []models.Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %d overlapping interval(s) for user %s", len(e.Overlapping), e.UserID)
}

// StoreError wraps a collaborator store failure. The engine performs no
// implicit retry; the caller decides whether to try again.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that an operation targeted an entity that does not
// exist. Distinct from ConflictError.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
