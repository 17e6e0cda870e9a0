/*
Package billing provides client invoice aggregation and the invoice
lifecycle state machine.

PURPOSE:
  Aggregates the same upstream events the payroll ledger consumes into
  per-client invoices, and governs each invoice's irreversible
  Draft -> Finalized -> Paid lifecycle.

KEY CONCEPTS IN THIS FILE (invoice.go):
  - Invoice: One client's billable summary for one inclusive date range
  - Status: The lifecycle state, advanced only by the Lifecycle manager

IMMUTABILITY:
  Once an invoice leaves Draft, every field except Status is frozen.
  There is deliberately NO generic "update invoice" operation anywhere in
  this package; Finalize and MarkPaid are the only mutators, and Delete
  is refused outside Draft. Finalized and Paid invoices are permanently
  retained.

INDEPENDENCE FROM THE LEDGER:
  Invoices and the payroll ledger are independent views over the same raw
  events. Invoice generation never reads or writes the ledger, and the
  per-invoice contactRate is unrelated to the ledger's configured daily
  rate. Reconciling the two is out of scope.

SEE ALSO:
  - aggregator.go: Draft invoice creation
  - lifecycle.go: State machine
  - store.go: Persistence interface
*/
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS - Irreversible lifecycle state
// =============================================================================

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusFinalized Status = "Finalized"
	StatusPaid      Status = "Paid"
)

// =============================================================================
// INVOICE
// =============================================================================

type Invoice struct {
	ID            string
	Number        int64  // monotonic, globally unique, never reused
	InvoiceNumber string // human-facing, e.g. INV-2026-0042

	ClientID    string
	ClientName  string
	PeriodStart string // YYYY-MM-DD, inclusive
	PeriodEnd   string // YYYY-MM-DD, inclusive

	EscortDays   decimal.Decimal
	EscortAmount decimal.Decimal
	GuardDays    decimal.Decimal
	GuardAmount  decimal.Decimal
	LaborHours   decimal.Decimal
	LaborAmount  decimal.Decimal

	Subtotal   decimal.Decimal // escort + guard + labor
	VATPercent decimal.Decimal
	VATAmount  decimal.Decimal // subtotal * vatPercent / 100
	Total      decimal.Decimal // subtotal + vat

	Status    Status
	CreatedAt time.Time
}

// FormatInvoiceNumber renders the human-facing number for a sequence value.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}
