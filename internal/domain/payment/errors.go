package payment

import "fmt"

// ValidationError marks input rejected before any external side effect.
// Each variant below is a sentinel, so callers match with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("payment: invalid %s: %s", e.Field, e.Reason)
}

var (
	ErrMissingName        = &ValidationError{Field: "name", Reason: "customer name is required"}
	ErrMissingContactInfo = &ValidationError{Field: "contact_info", Reason: "contact info is required"}
	ErrNoReachableChannel = &ValidationError{Field: "contact_info", Reason: "at least one of email or phone is required"}
	ErrMissingSource      = &ValidationError{Field: "source", Reason: "payment source token is required"}
	ErrNonPositiveAmount  = &ValidationError{Field: "amount", Reason: "amount must be greater than zero"}
)
