/*
Package events provides the read-only view over the upstream operational
record collections that feed the payroll ledger and client invoicing.

PURPOSE:
  The master-data application owns four record collections: guard-duty
  attendance, day-labor timesheets, escort-duty assignments, and
  loan/advance issuances. This package defines their wire shapes and the
  Source interface through which the engine consumes them. Nothing in this
  package mutates upstream data.

WIRE CONTRACT:
  Records arrive the way the upstream forms store them:
  - Dates are YYYY-MM-DD strings. Lexicographic comparison is range
    comparison for ISO dates, so filters compare strings directly.
  - Numeric fields (hours, days, conveyance, loan amounts) are strings.
    Consumers coerce them with ParseAmount; an unparseable value coerces
    to zero rather than failing a whole payroll pass.

SEE ALSO:
  - source.go: Source interface and in-range filter helpers
  - memory.go: In-memory Source for tests and demos
  - payroll/deriver.go: Ledger derivation over these records
  - billing/aggregator.go: Invoice aggregation over these records
*/
package events

import "github.com/shopspring/decimal"

// =============================================================================
// UPSTREAM STATUSES
// =============================================================================

const (
	GuardStatusPresent = "Present"
	GuardStatusAbsent  = "Absent"
	GuardStatusLate    = "Late"

	EscortStatusActive   = "Active"
	EscortStatusInactive = "Inactive"

	LoanStatusActive = "Active"
	LoanStatusClosed = "Closed"
)

// =============================================================================
// RECORD SHAPES
// =============================================================================

// GuardDutyRecord is one guard-duty attendance entry (one shift, one day).
type GuardDutyRecord struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	ClientName   string `json:"clientName"`
	Date         string `json:"date"`
	Shift        string `json:"shift"`
	Status       string `json:"status"` // Present | Absent | Late
}

// DayLaborRecord is one day-labor timesheet entry.
type DayLaborRecord struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	ClientName   string `json:"clientName"`
	Date         string `json:"date"`
	HoursWorked  string `json:"hoursWorked"`
}

// EscortDutyRecord is one escort-duty assignment spanning a date range.
// TotalDays may be fractional in 0.5 increments (2 shifts = 1 day).
type EscortDutyRecord struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	ClientName   string `json:"clientName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Status       string `json:"status"` // Active | Inactive
	TotalDays    string `json:"totalDays"`
	Conveyance   string `json:"conveyance"`
}

// LoanAdvanceRecord is one loan or salary-advance issuance.
type LoanAdvanceRecord struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	IssueDate    string `json:"issueDate"`
	Type         string `json:"type"` // e.g. "Loan", "Advance"
	Amount       string `json:"amount"`
	Status       string `json:"status"` // Active | Closed
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// ParseAmount converts an upstream string numeric to a decimal.
//
// An empty string is an absent optional field and parses to zero with
// ok=true. A non-empty unparseable value coerces to zero with ok=false so
// callers can count and log the coercion without aborting a bulk pass.
func ParseAmount(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
