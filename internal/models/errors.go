package models

import (
	"fmt"
	"strings"
)

// Machine-readable reason codes carried by ValidationError.
const (
	CodePastDate          = "PAST_DATE"
	CodeBadTimeFormat     = "BAD_TIME_FORMAT"
	CodeEndBeforeStart    = "END_BEFORE_START"
	CodeOverCapacity      = "OVER_CAPACITY"
	CodeExtendNotLonger   = "EXTEND_NOT_LONGER"
	CodeWorkspaceDisabled = "WORKSPACE_DISABLED"
	CodeAlreadyActive     = "ALREADY_ACTIVE"
	CodeNotActive         = "NOT_ACTIVE"
	CodeInvalidWindow     = "INVALID_WINDOW"
)

// ValidationError means the caller's input was malformed. Always recoverable;
// the message is safe to surface verbatim.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ConflictError means the requested slot overlaps existing active bookings.
// The blockers are included so the caller can propose alternatives.
type ConflictError struct {
	Conflicts []Booking
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, b := range e.Conflicts {
		ids[i] = fmt.Sprintf("%s (%s %s-%s)", b.ID, b.Date.Format("2006-01-02"), b.Start, b.End)
	}
	return "slot conflicts with " + strings.Join(ids, ", ")
}

// StateError means an operation is illegal for the current lifecycle state.
type StateError struct {
	Op     string
	Status string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in status %s", e.Op, e.Status)
}

// NotFoundError means an id resolved to nothing. Fatal to the request, not
// to the session.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
