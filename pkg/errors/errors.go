package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidSession       = errors.New("invalid or expired session")
	ErrNotAdmin             = errors.New("admin identity required")
	ErrStudentNotFound      = errors.New("student not found")
	ErrUnknownSubject       = errors.New("unknown subject")
	ErrSubjectOutOfScope    = errors.New("subject outside editor scope")
	ErrUnknownCategory      = errors.New("unknown score category")
	ErrUnknownField         = errors.New("unknown score field")
	ErrCategoryNotActive    = errors.New("category is not the active tab")
	ErrInvalidScoreValue    = errors.New("invalid score value")
	ErrNameRequired         = errors.New("name required")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrSnapshotNotFound     = errors.New("no persisted snapshot")
	ErrSnapshotCorrupt      = errors.New("persisted snapshot is corrupt")
)

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

// Unwrap lets callers match score coercion failures with errors.Is.
func (e ValidationError) Unwrap() error {
	return ErrInvalidScoreValue
}

// ConfirmationRequiredError is returned when a destructive action needs the
// caller to confirm first. Name is what the prompt should show.
type ConfirmationRequiredError struct {
	StudentID string
	Name      string
}

func (e ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("confirmation required to delete student %q", e.Name)
}

func (e ConfirmationRequiredError) Unwrap() error {
	return ErrConfirmationRequired
}
