/*
errors.go - Error types for invoice operations

PURPOSE:
  The invoice-side error taxonomy. Callers must be able to tell "doesn't
  exist" (retry is pointless) from "wrong state" (someone else advanced
  the invoice) from "bad input" (fix the request), so each kind is a
  distinct type carrying the affected id or field.

USAGE:
    if errors.Is(err, billing.ErrInvoiceNotFound) { ... }
    var stateErr *billing.InvalidStateError
    if errors.As(err, &stateErr) { ... }

SEE ALSO:
  - lifecycle.go: Raises InvalidStateError
  - aggregator.go: Raises ValidationError
*/
package billing

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvoiceNotFound is returned for unknown invoice identifiers.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidState is the base of all lifecycle violations.
	ErrInvalidState = errors.New("invalid invoice state for operation")

	// ErrValidation is the base of all input validation failures.
	ErrValidation = errors.New("invalid input")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidStateError reports a lifecycle transition attempted from a
// disallowed state.
type InvalidStateError struct {
	ID     string
	Status Status // actual status at the time of the attempt
	Action string // "finalize", "mark-paid", "delete"
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s invoice %s: status is %s", e.Action, e.ID, e.Status)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ValidationError reports malformed input to a public operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

func IsNotFound(err error) bool     { return errors.Is(err, ErrInvoiceNotFound) }
func IsInvalidState(err error) bool { return errors.Is(err, ErrInvalidState) }
func IsValidation(err error) bool   { return errors.Is(err, ErrValidation) }
