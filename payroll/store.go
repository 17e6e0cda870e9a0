/*
store.go - Persistence interface for the payroll ledger

PURPOSE:
  Defines the interface between the derivation logic and the database.
  The Store holds three things that together form the ledger:
  - the append-only sequence of ledger entries
  - the processed-event key set (exactly-once guard)
  - the current-balance index per employee

APPEND-ONLY CONTRACT:
  - Append() is the ONLY write operation
  - No Update() or Delete() methods exist
  - An entry, its processed-event marker, and the balance index update are
    recorded as ONE atomic unit; a crash cannot leave a marker without its
    entry or vice versa

DERIVED STATE:
  The processed set and the balance index are both replayable from the
  entries alone. They are persisted as explicit indexes so a derivation
  pass does not pay an O(n) ledger replay per event.

IMPLEMENTATIONS:
  - payroll/store/memory.go: In-memory, for tests and dev
  - store/sqlite/sqlite.go: SQLite, for the server

SEE ALSO:
  - deriver.go: The only producer of entries
  - types.go: LedgerEntry and EventKey
*/
package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STORE - Ledger persistence (append-only)
// =============================================================================

// Store persists ledger entries. Append-only: no update, no delete.
type Store interface {
	// Append records the entry, marks its event key processed, and updates
	// the employee's balance index, atomically. Returns a
	// *DuplicateEventError if the key is already processed.
	Append(ctx context.Context, entry LedgerEntry) error

	// Processed reports whether the event key has already produced an entry.
	Processed(ctx context.Context, eventKey string) (bool, error)

	// CurrentBalance returns the balance after the most recently appended
	// entry for the employee, or zero if the employee has no entries.
	CurrentBalance(ctx context.Context, employeeID string) (decimal.Decimal, error)

	// Query returns entries matching the filter. The store imposes no
	// ordering guarantee; ordering for display is a presentation concern.
	Query(ctx context.Context, f Filter) ([]LedgerEntry, error)
}

// Filter narrows a ledger query. Zero values match everything.
type Filter struct {
	EmployeeID string
	Month      string // YYYY-MM
}

// Matches reports whether the entry satisfies the filter.
func (f Filter) Matches(e LedgerEntry) bool {
	if f.EmployeeID != "" && e.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Month != "" && e.Month != f.Month {
		return false
	}
	return true
}
