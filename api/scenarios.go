/*
scenarios.go - Demo data seeding for testing and demonstrations

PURPOSE:
  Seeds a small, self-consistent set of upstream records so a fresh
  database demonstrates the full flow: derive the ledger, generate an
  invoice, walk it through its lifecycle.

THE DEMO SET:
  Two employees across two clients over one month:
  - Karim Uddin: guard shifts (one Absent, so not payable) and a loan
  - Rafiq Mia: day labor (including an 18-hour double shift) and an
    escort assignment with conveyance

  One guard record deliberately has no employee id, exercising the
  name-fallback path, and one labor record carries malformed hours,
  exercising numeric coercion.

SEE ALSO:
  - handlers.go: LoadScenario endpoint
  - events/source.go: Recorder interface
*/
package api

import (
	"context"
	"fmt"

	"github.com/warp/payroll-engine/events"
)

// LoadDemoData seeds the demo records through the recorder.
// Returns per-collection insert counts.
func LoadDemoData(ctx context.Context, rec events.Recorder) (map[string]int, error) {
	guard := []events.GuardDutyRecord{
		{ID: "gd-1001", EmployeeID: "emp-001", EmployeeName: "Karim Uddin", ClientName: "Acme Textiles", Date: "2026-08-03", Shift: "Night", Status: events.GuardStatusPresent},
		{ID: "gd-1002", EmployeeID: "emp-001", EmployeeName: "Karim Uddin", ClientName: "Acme Textiles", Date: "2026-08-04", Shift: "Night", Status: events.GuardStatusAbsent},
		{ID: "gd-1003", EmployeeName: "Karim Uddin", ClientName: "Acme Textiles", Date: "2026-08-05", Shift: "Day", Status: events.GuardStatusPresent},
	}
	labor := []events.DayLaborRecord{
		{ID: "dl-2001", EmployeeID: "emp-002", EmployeeName: "Rafiq Mia", ClientName: "Delta Shipping", Date: "2026-08-06", HoursWorked: "18"},
		{ID: "dl-2002", EmployeeID: "emp-002", EmployeeName: "Rafiq Mia", ClientName: "Delta Shipping", Date: "2026-08-07", HoursWorked: "nine"},
	}
	escorts := []events.EscortDutyRecord{
		{ID: "ed-3001", EmployeeID: "emp-002", EmployeeName: "Rafiq Mia", ClientName: "Delta Shipping", StartDate: "2026-08-10", EndDate: "2026-08-12", Status: events.EscortStatusActive, TotalDays: "2.5", Conveyance: "150"},
	}
	loans := []events.LoanAdvanceRecord{
		{ID: "la-4001", EmployeeID: "emp-001", EmployeeName: "Karim Uddin", IssueDate: "2026-08-15", Type: "Advance", Amount: "2000", Status: events.LoanStatusActive},
	}

	for _, r := range guard {
		if err := rec.RecordGuardDuty(ctx, r); err != nil {
			return nil, fmt.Errorf("seed guard duty %s: %w", r.ID, err)
		}
	}
	for _, r := range labor {
		if err := rec.RecordDayLabor(ctx, r); err != nil {
			return nil, fmt.Errorf("seed day labor %s: %w", r.ID, err)
		}
	}
	for _, r := range escorts {
		if err := rec.RecordEscortDuty(ctx, r); err != nil {
			return nil, fmt.Errorf("seed escort duty %s: %w", r.ID, err)
		}
	}
	for _, r := range loans {
		if err := rec.RecordLoanAdvance(ctx, r); err != nil {
			return nil, fmt.Errorf("seed loan advance %s: %w", r.ID, err)
		}
	}

	return map[string]int{
		"guard_duty":    len(guard),
		"day_labor":     len(labor),
		"escort_duty":   len(escorts),
		"loan_advances": len(loans),
	}, nil
}
