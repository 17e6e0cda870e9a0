/*
lifecycle.go - Invoice state machine

PURPOSE:
  Enforces the one-directional invoice lifecycle over the Store:

    Draft ──finalize──▶ Finalized ──markPaid──▶ Paid

  No transition may be skipped or reversed. Deletion is allowed only
  while Draft; Finalized and Paid invoices are retained permanently.

STRUCTURAL IMMUTABILITY:
  These three methods are the ONLY mutators of a stored invoice. The
  state check and the write happen as one compare-and-set inside the
  store, scoped to the single invoice id, so a stale caller gets an
  InvalidStateError instead of silently clobbering a concurrent
  transition.

SEE ALSO:
  - store.go: TransitionStatus / DeleteDraft contracts
  - errors.go: InvalidStateError, ErrInvoiceNotFound
*/
package billing

import "context"

// =============================================================================
// LIFECYCLE MANAGER
// =============================================================================

// Lifecycle advances invoices through their states.
type Lifecycle struct {
	store Store
}

func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store}
}

// Finalize moves a Draft invoice to Finalized. Only Status changes.
func (l *Lifecycle) Finalize(ctx context.Context, id string) (Invoice, error) {
	return l.store.TransitionStatus(ctx, id, StatusDraft, StatusFinalized)
}

// MarkPaid moves a Finalized invoice to Paid. An invoice must be
// finalized before payment can be recorded; Draft fails like any other
// wrong state.
func (l *Lifecycle) MarkPaid(ctx context.Context, id string) (Invoice, error) {
	return l.store.TransitionStatus(ctx, id, StatusFinalized, StatusPaid)
}

// Delete removes an invoice, allowed only while it is still Draft.
func (l *Lifecycle) Delete(ctx context.Context, id string) error {
	return l.store.DeleteDraft(ctx, id)
}
