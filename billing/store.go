/*
store.go - Persistence interface for invoices

PURPOSE:
  Defines how invoices are stored and, critically, how their status
  advances. Status changes go through TransitionStatus, a compare-and-set
  scoped to a single invoice id: the state check and the write are one
  atomic unit, so two concurrent finalize calls cannot both succeed.

NUMBERING:
  The store owns a single atomically-incremented counter for invoice
  numbers. Numbers are never derived by scanning existing invoices, so a
  deleted draft's number is never reused.

IMPLEMENTATIONS:
  - billing/store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: SQLite, for the server

SEE ALSO:
  - lifecycle.go: The only caller of TransitionStatus and DeleteDraft
  - aggregator.go: The only caller of Create and NextNumber
*/
package billing

import "context"

// =============================================================================
// STORE - Invoice persistence
// =============================================================================

type Store interface {
	// Create stores a new invoice. The invoice must be Draft.
	Create(ctx context.Context, inv Invoice) error

	// Get returns the invoice, or ErrInvoiceNotFound.
	Get(ctx context.Context, id string) (Invoice, error)

	// List returns invoices matching the filter.
	List(ctx context.Context, f InvoiceFilter) ([]Invoice, error)

	// TransitionStatus atomically advances the invoice from one status to
	// another. Returns the updated invoice, ErrInvoiceNotFound for an
	// unknown id, or a *InvalidStateError if the current status differs
	// from `from`.
	TransitionStatus(ctx context.Context, id string, from, to Status) (Invoice, error)

	// DeleteDraft atomically deletes the invoice if and only if it is
	// still Draft. Same error contract as TransitionStatus.
	DeleteDraft(ctx context.Context, id string) error

	// NextNumber returns the next value of the monotonic invoice counter.
	// Values are never reused, even after deletions.
	NextNumber(ctx context.Context) (int64, error)
}

// InvoiceFilter narrows a List call. Zero values match everything.
// From/To select invoices whose period overlaps [From, To].
type InvoiceFilter struct {
	ClientID string
	From     string // YYYY-MM-DD
	To       string // YYYY-MM-DD
}

// Matches reports whether the invoice satisfies the filter.
func (f InvoiceFilter) Matches(inv Invoice) bool {
	if f.ClientID != "" && inv.ClientID != f.ClientID {
		return false
	}
	if f.From != "" && inv.PeriodEnd < f.From {
		return false
	}
	if f.To != "" && inv.PeriodStart > f.To {
		return false
	}
	return true
}
