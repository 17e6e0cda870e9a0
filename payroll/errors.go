/*
errors.go - Error types for the payroll ledger engine

PURPOSE:
  Centralizes the ledger-side error taxonomy. Callers branch with
  errors.Is / errors.As rather than string matching.

ERROR CATEGORIES:
  1. Duplicate events - Defense-in-depth against double derivation
  2. Store failures - Persistence-level errors, wrapped with context

USAGE:
    if errors.Is(err, payroll.ErrDuplicateEvent) {
        // already derived, safe to skip
    }

SEE ALSO:
  - store.go: Append contract that raises these
  - billing/errors.go: Invoice-side error taxonomy
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateEvent is returned when appending an entry whose
	// (source, sourceId) key has already produced a ledger entry. The
	// deriver should never attempt this; the store enforces it anyway.
	ErrDuplicateEvent = errors.New("event already produced a ledger entry")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DuplicateEventError identifies exactly which event was replayed.
type DuplicateEventError struct {
	Source   SourceModule
	SourceID string
}

func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("duplicate event: %s", EventKey(e.Source, e.SourceID))
}

func (e *DuplicateEventError) Unwrap() error {
	return ErrDuplicateEvent
}
