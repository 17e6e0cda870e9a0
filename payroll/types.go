/*
Package payroll provides the core payroll ledger engine.

PURPOSE:
  This package contains the types and algorithms that turn heterogeneous
  operational events (guard-duty attendance, day-labor timesheets,
  escort-duty assignments, loan issuances) into an append-only monetary
  ledger with a running balance per employee.

KEY CONCEPTS IN THIS FILE (types.go):
  - LedgerEntry: An immutable record of one monetary effect on one employee
  - SourceModule: The originating domain of the event behind an entry
  - EventKey: The dedup key guaranteeing exactly-once derivation

DESIGN PRINCIPLES:
  1. Immutability: Entries are never updated or deleted once appended
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Idempotence: Every entry is tied to exactly one source event; an
     event can never produce two entries
  4. Auditability: Every entry carries its source module and source id

SEE ALSO:
  - deriver.go: Event-to-entry derivation
  - store.go: Persistence interface
  - errors.go: Error types
*/
package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SOURCE MODULE - Originating domain of a ledger entry
// =============================================================================

type SourceModule string

const (
	SourceGuard       SourceModule = "Guard"
	SourceDayLabor    SourceModule = "DayLabor"
	SourceEscort      SourceModule = "Escort"
	SourceLoanAdvance SourceModule = "LoanAdvance"
)

// EventKey builds the composite dedup key for a source event. No source id
// within a module may ever produce more than one ledger entry.
func EventKey(source SourceModule, sourceID string) string {
	return fmt.Sprintf("%s-%s", source, sourceID)
}

// =============================================================================
// LEDGER ENTRY - Immutable record of one monetary effect
// =============================================================================

type LedgerEntry struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Source       SourceModule
	SourceID     string
	Date         string // YYYY-MM-DD
	Month        string // YYYY-MM, derived from Date
	ShiftOrHours string // descriptive label: shift name, hours, days

	Earned         decimal.Decimal // >= 0
	Deducted       decimal.Decimal // >= 0
	NetChange      decimal.Decimal // Earned - Deducted
	RunningBalance decimal.Decimal // cumulative balance after this entry

	CreatedAt time.Time
}

// EventKey returns the dedup key implied by this entry's source fields.
func (e LedgerEntry) EventKey() string {
	return EventKey(e.Source, e.SourceID)
}

// MonthOf derives the YYYY-MM month from a YYYY-MM-DD date string.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// FallbackEmployeeID synthesizes a stable identifier from a display name
// for upstream records that lack an explicit employee id. The same name
// always maps to the same id across derivation runs.
func FallbackEmployeeID(name string) string {
	return "name:" + strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
