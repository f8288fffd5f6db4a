package models

import "fmt"

// Request-recoverable error taxonomy. Handlers map these onto HTTP statuses;
// none of them is fatal to the process.

// ValidationError rejects a write that violates an input rule (bad donation
// amount, inactive project, ended campaign). No state has changed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown slug, id, or category name.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// EligibilityError rejects an otherwise valid action the actor may not take,
// such as a creator donating to their own project.
type EligibilityError struct {
	Msg string
}

func (e *EligibilityError) Error() string { return e.Msg }

func NewEligibilityError(format string, args ...any) *EligibilityError {
	return &EligibilityError{Msg: fmt.Sprintf(format, args...)}
}
