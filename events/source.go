package events

import "context"

// =============================================================================
// SOURCE - Read-only access to upstream record collections
// =============================================================================

// Source fetches upstream records. Implementations must be read-only with
// respect to the upstream collections; the engine never writes back.
type Source interface {
	GuardDuty(ctx context.Context) ([]GuardDutyRecord, error)
	DayLabor(ctx context.Context) ([]DayLaborRecord, error)
	EscortDuty(ctx context.Context) ([]EscortDutyRecord, error)
	LoanAdvances(ctx context.Context) ([]LoanAdvanceRecord, error)
}

// Recorder is the write side used only by demo scenario seeding and tests.
// The production upstream collections are owned by the master-data
// application; the engine itself never records events.
type Recorder interface {
	RecordGuardDuty(ctx context.Context, rec GuardDutyRecord) error
	RecordDayLabor(ctx context.Context, rec DayLaborRecord) error
	RecordEscortDuty(ctx context.Context, rec EscortDutyRecord) error
	RecordLoanAdvance(ctx context.Context, rec LoanAdvanceRecord) error
}

// =============================================================================
// RANGE HELPERS - ISO date strings compare lexicographically
// =============================================================================

// InRange reports whether date falls within [from, to] inclusive.
// Empty bounds are open.
func InRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}

// Overlaps reports whether [start, end] overlaps [from, to] inclusive.
func Overlaps(start, end, from, to string) bool {
	return start <= to && end >= from
}
