/*
deriver.go - Event-to-ledger derivation engine

PURPOSE:
  Converts raw attendance/labor/escort/loan events into monetary ledger
  entries, exactly once per event, preserving per-employee running
  balances. This is the single producer of ledger entries in the system.

ALGORITHM (one invocation):
  One pass per source, in a fixed order: Guard, DayLabor, Escort,
  LoanAdvance. The order only matters in that it determines running-
  balance ordering when multiple sources land in the same invocation;
  within a source, records are taken in the source's retrieval order.

  For each event:
    1. Skip if its event key is already processed (idempotence guard)
    2. Skip if the event is ineligible (guard not Present, escort/loan
       not Active)
    3. Compute earned/deducted per the source's monetary rule
    4. Resolve the employee id (explicit id, or stable name fallback)
    5. Read the current balance, add the net change
    6. Append entry + processed marker atomically

MONETARY RULES:
  Guard:       earned = configured flat daily rate per Present shift
  DayLabor:    earned = (hoursWorked / 9) x daily rate, fractional days
  Escort:      earned = daily rate x totalDays + conveyance
  LoanAdvance: deducted = loan amount (the only negative net change)

  All monetary results round to 2 decimal places.

NOTE ON RATES:
  The flat daily rate here and the per-invoice contactRate in
  billing.Aggregator are deliberately independent values. The ledger pays
  a fixed configured rate; billing charges whatever rate the invoice was
  generated with. Do not conflate them.

FAILURE SEMANTICS:
  A malformed numeric field on one record must not sink a whole payroll
  run: it coerces to zero, is counted in Result.Coerced, and is logged at
  WARN. Store errors, by contrast, abort the pass and are returned.

SEE ALSO:
  - store.go: Atomic append contract
  - events/records.go: Upstream record shapes and ParseAmount
*/
package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/events"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds the derivation rates.
type Config struct {
	// GuardDailyRate is the flat amount earned per Present guard shift and
	// the daily rate used for day-labor and escort earnings. Independent
	// of any invoice contactRate.
	GuardDailyRate decimal.Decimal

	// HoursPerLaborDay defines one standard labor day. 9 hours = 1 day.
	HoursPerLaborDay decimal.Decimal
}

// DefaultConfig returns the standard rates: 500 per day, 9-hour days.
func DefaultConfig() Config {
	return Config{
		GuardDailyRate:   decimal.NewFromInt(500),
		HoursPerLaborDay: decimal.NewFromInt(9),
	}
}

// =============================================================================
// DERIVER
// =============================================================================

// Deriver pulls events from a Source and appends ledger entries to a Store.
type Deriver struct {
	source events.Source
	store  Store
	cfg    Config
	log    *logrus.Logger
}

// NewDeriver creates a deriver. A nil logger falls back to the standard one.
func NewDeriver(source events.Source, store Store, cfg Config, log *logrus.Logger) *Deriver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Deriver{source: source, store: store, cfg: cfg, log: log}
}

// Result summarizes one derivation invocation.
type Result struct {
	// EntriesGenerated is the count of new ledger entries this invocation.
	EntriesGenerated int
	// Coerced counts malformed numeric fields coerced to zero.
	Coerced int
}

// Derive runs one full derivation pass over all sources.
//
// Calling Derive any number of times with an unchanged upstream event set
// never changes the total ledger size after the first successful pass:
// every event is guarded by its processed key.
func (d *Deriver) Derive(ctx context.Context) (Result, error) {
	var res Result

	if err := d.deriveGuard(ctx, &res); err != nil {
		return res, err
	}
	if err := d.deriveDayLabor(ctx, &res); err != nil {
		return res, err
	}
	if err := d.deriveEscort(ctx, &res); err != nil {
		return res, err
	}
	if err := d.deriveLoans(ctx, &res); err != nil {
		return res, err
	}

	d.log.WithFields(logrus.Fields{
		"entries_generated": res.EntriesGenerated,
		"coerced_fields":    res.Coerced,
	}).Info("ledger derivation complete")

	return res, nil
}

// =============================================================================
// PER-SOURCE PASSES
// =============================================================================

func (d *Deriver) deriveGuard(ctx context.Context, res *Result) error {
	records, err := d.source.GuardDuty(ctx)
	if err != nil {
		return fmt.Errorf("fetch guard duty: %w", err)
	}

	for _, rec := range records {
		if rec.Status != events.GuardStatusPresent {
			continue
		}
		entry := derivedEntry{
			source:       SourceGuard,
			sourceID:     rec.ID,
			employeeID:   rec.EmployeeID,
			employeeName: rec.EmployeeName,
			date:         rec.Date,
			label:        rec.Shift,
			earned:       d.cfg.GuardDailyRate,
		}
		if err := d.appendEntry(ctx, entry, res); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deriver) deriveDayLabor(ctx context.Context, res *Result) error {
	records, err := d.source.DayLabor(ctx)
	if err != nil {
		return fmt.Errorf("fetch day labor: %w", err)
	}

	for _, rec := range records {
		hours := d.coerce(rec.HoursWorked, "hoursWorked", SourceDayLabor, rec.ID, res)
		earned := hours.Div(d.cfg.HoursPerLaborDay).Mul(d.cfg.GuardDailyRate).Round(2)

		entry := derivedEntry{
			source:       SourceDayLabor,
			sourceID:     rec.ID,
			employeeID:   rec.EmployeeID,
			employeeName: rec.EmployeeName,
			date:         rec.Date,
			label:        rec.HoursWorked + " hours",
			earned:       earned,
		}
		if err := d.appendEntry(ctx, entry, res); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deriver) deriveEscort(ctx context.Context, res *Result) error {
	records, err := d.source.EscortDuty(ctx)
	if err != nil {
		return fmt.Errorf("fetch escort duty: %w", err)
	}

	for _, rec := range records {
		if rec.Status != events.EscortStatusActive {
			continue
		}
		days := d.coerce(rec.TotalDays, "totalDays", SourceEscort, rec.ID, res)
		conveyance := d.coerce(rec.Conveyance, "conveyance", SourceEscort, rec.ID, res)
		earned := d.cfg.GuardDailyRate.Mul(days).Add(conveyance).Round(2)

		entry := derivedEntry{
			source:       SourceEscort,
			sourceID:     rec.ID,
			employeeID:   rec.EmployeeID,
			employeeName: rec.EmployeeName,
			date:         rec.StartDate,
			label:        rec.TotalDays + " days",
			earned:       earned,
		}
		if err := d.appendEntry(ctx, entry, res); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deriver) deriveLoans(ctx context.Context, res *Result) error {
	records, err := d.source.LoanAdvances(ctx)
	if err != nil {
		return fmt.Errorf("fetch loan advances: %w", err)
	}

	for _, rec := range records {
		if rec.Status != events.LoanStatusActive {
			continue
		}
		amount := d.coerce(rec.Amount, "amount", SourceLoanAdvance, rec.ID, res)

		entry := derivedEntry{
			source:       SourceLoanAdvance,
			sourceID:     rec.ID,
			employeeID:   rec.EmployeeID,
			employeeName: rec.EmployeeName,
			date:         rec.IssueDate,
			label:        rec.Type,
			deducted:     amount,
		}
		if err := d.appendEntry(ctx, entry, res); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// ENTRY CONSTRUCTION
// =============================================================================

type derivedEntry struct {
	source       SourceModule
	sourceID     string
	employeeID   string
	employeeName string
	date         string
	label        string
	earned       decimal.Decimal
	deducted     decimal.Decimal
}

func (d *Deriver) appendEntry(ctx context.Context, de derivedEntry, res *Result) error {
	key := EventKey(de.source, de.sourceID)
	processed, err := d.store.Processed(ctx, key)
	if err != nil {
		return fmt.Errorf("check processed %s: %w", key, err)
	}
	if processed {
		return nil
	}

	employeeID := de.employeeID
	if employeeID == "" {
		employeeID = FallbackEmployeeID(de.employeeName)
	}

	balance, err := d.store.CurrentBalance(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("current balance for %s: %w", employeeID, err)
	}

	net := de.earned.Sub(de.deducted)
	entry := LedgerEntry{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		EmployeeName:   de.employeeName,
		Source:         de.source,
		SourceID:       de.sourceID,
		Date:           de.date,
		Month:          MonthOf(de.date),
		ShiftOrHours:   de.label,
		Earned:         de.earned,
		Deducted:       de.deducted,
		NetChange:      net,
		RunningBalance: balance.Add(net),
		CreatedAt:      time.Now().UTC(),
	}

	if err := d.store.Append(ctx, entry); err != nil {
		// Another writer beat us to this key between the Processed check
		// and the append. The event is already in the ledger; move on.
		if errors.Is(err, ErrDuplicateEvent) {
			return nil
		}
		return fmt.Errorf("append entry for %s: %w", key, err)
	}

	res.EntriesGenerated++
	return nil
}

func (d *Deriver) coerce(raw, field string, source SourceModule, id string, res *Result) decimal.Decimal {
	v, ok := events.ParseAmount(raw)
	if !ok {
		res.Coerced++
		d.log.WithFields(logrus.Fields{
			"source":    source,
			"source_id": id,
			"field":     field,
			"value":     raw,
		}).Warn("malformed numeric field coerced to zero")
	}
	return v
}
