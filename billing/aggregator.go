/*
aggregator.go - Draft invoice generation

PURPOSE:
  Computes one client's billable summary over one inclusive date range
  and stores it as a Draft invoice. Reads upstream events only; never
  touches the payroll ledger.

BILLING RULES:
  Escort: sum totalDays over Active records for the client whose
          [startDate, endDate] overlaps the period;
          amount = days x contactRate + summed conveyance
  Guard:  count Present records for the client dated within the period;
          amount = count x contactRate (one day's rate per shift)
  Labor:  sum hoursWorked over the client's in-range records;
          amount = hours / 9 x contactRate

  Sub-amounts round to 2 decimal places. subtotal, vat and total follow
  from them. Malformed upstream numerics coerce to zero, same policy as
  the ledger deriver.

NOTE ON RATES:
  contactRate is a per-invoice parameter. It is intentionally independent
  of the ledger's configured guard daily rate; the two computations are
  separate code paths and must not be conflated.

SEE ALSO:
  - lifecycle.go: Transitions for the created Draft
  - store.go: NextNumber and Create
*/
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/events"
)

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator builds Draft invoices from upstream events.
type Aggregator struct {
	source events.Source
	store  Store
}

func NewAggregator(source events.Source, store Store) *Aggregator {
	return &Aggregator{source: source, store: store}
}

// GenerateParams are the inputs to invoice generation.
type GenerateParams struct {
	ClientID    string
	ClientName  string
	PeriodStart string // YYYY-MM-DD, inclusive
	PeriodEnd   string // YYYY-MM-DD, inclusive
	ContactRate decimal.Decimal
	VATPercent  decimal.Decimal
}

func (p GenerateParams) validate() error {
	if p.ClientName == "" {
		return &ValidationError{Field: "clientName", Message: "required"}
	}
	if !validDate(p.PeriodStart) {
		return &ValidationError{Field: "periodStart", Message: "must be YYYY-MM-DD"}
	}
	if !validDate(p.PeriodEnd) {
		return &ValidationError{Field: "periodEnd", Message: "must be YYYY-MM-DD"}
	}
	if p.PeriodEnd < p.PeriodStart {
		return &ValidationError{Field: "period", Message: "end before start"}
	}
	if p.ContactRate.IsNegative() {
		return &ValidationError{Field: "contactRate", Message: "must not be negative"}
	}
	if p.VATPercent.IsNegative() || p.VATPercent.GreaterThan(decimal.NewFromInt(100)) {
		return &ValidationError{Field: "vatPercent", Message: "must be between 0 and 100"}
	}
	return nil
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// Generate computes and stores a new Draft invoice.
//
// Upstream data-source failures propagate; beyond those and input
// validation there are no error conditions.
func (a *Aggregator) Generate(ctx context.Context, p GenerateParams) (Invoice, error) {
	if err := p.validate(); err != nil {
		return Invoice{}, err
	}

	escortDays, escortAmount, err := a.escortContribution(ctx, p)
	if err != nil {
		return Invoice{}, err
	}
	guardDays, guardAmount, err := a.guardContribution(ctx, p)
	if err != nil {
		return Invoice{}, err
	}
	laborHours, laborAmount, err := a.laborContribution(ctx, p)
	if err != nil {
		return Invoice{}, err
	}

	subtotal := escortAmount.Add(guardAmount).Add(laborAmount)
	vat := subtotal.Mul(p.VATPercent).Div(decimal.NewFromInt(100)).Round(2)

	now := time.Now().UTC()
	seq, err := a.store.NextNumber(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("next invoice number: %w", err)
	}

	inv := Invoice{
		ID:            uuid.NewString(),
		Number:        seq,
		InvoiceNumber: FormatInvoiceNumber(now.Year(), seq),
		ClientID:      p.ClientID,
		ClientName:    p.ClientName,
		PeriodStart:   p.PeriodStart,
		PeriodEnd:     p.PeriodEnd,
		EscortDays:    escortDays,
		EscortAmount:  escortAmount,
		GuardDays:     guardDays,
		GuardAmount:   guardAmount,
		LaborHours:    laborHours,
		LaborAmount:   laborAmount,
		Subtotal:      subtotal,
		VATPercent:    p.VATPercent,
		VATAmount:     vat,
		Total:         subtotal.Add(vat),
		Status:        StatusDraft,
		CreatedAt:     now,
	}

	if err := a.store.Create(ctx, inv); err != nil {
		return Invoice{}, fmt.Errorf("store invoice: %w", err)
	}
	return inv, nil
}

// =============================================================================
// PER-SOURCE CONTRIBUTIONS
// =============================================================================

func (a *Aggregator) escortContribution(ctx context.Context, p GenerateParams) (days, amount decimal.Decimal, err error) {
	records, err := a.source.EscortDuty(ctx)
	if err != nil {
		return days, amount, fmt.Errorf("fetch escort duty: %w", err)
	}

	conveyance := decimal.Zero
	for _, rec := range records {
		if rec.ClientName != p.ClientName || rec.Status != events.EscortStatusActive {
			continue
		}
		if !events.Overlaps(rec.StartDate, rec.EndDate, p.PeriodStart, p.PeriodEnd) {
			continue
		}
		d, _ := events.ParseAmount(rec.TotalDays)
		c, _ := events.ParseAmount(rec.Conveyance)
		days = days.Add(d)
		conveyance = conveyance.Add(c)
	}

	amount = days.Mul(p.ContactRate).Add(conveyance).Round(2)
	return days, amount, nil
}

func (a *Aggregator) guardContribution(ctx context.Context, p GenerateParams) (days, amount decimal.Decimal, err error) {
	records, err := a.source.GuardDuty(ctx)
	if err != nil {
		return days, amount, fmt.Errorf("fetch guard duty: %w", err)
	}

	for _, rec := range records {
		if rec.ClientName != p.ClientName || rec.Status != events.GuardStatusPresent {
			continue
		}
		if !events.InRange(rec.Date, p.PeriodStart, p.PeriodEnd) {
			continue
		}
		days = days.Add(decimal.NewFromInt(1))
	}

	amount = days.Mul(p.ContactRate).Round(2)
	return days, amount, nil
}

func (a *Aggregator) laborContribution(ctx context.Context, p GenerateParams) (hours, amount decimal.Decimal, err error) {
	records, err := a.source.DayLabor(ctx)
	if err != nil {
		return hours, amount, fmt.Errorf("fetch day labor: %w", err)
	}

	for _, rec := range records {
		if rec.ClientName != p.ClientName {
			continue
		}
		if !events.InRange(rec.Date, p.PeriodStart, p.PeriodEnd) {
			continue
		}
		h, _ := events.ParseAmount(rec.HoursWorked)
		hours = hours.Add(h)
	}

	amount = hours.Div(decimal.NewFromInt(9)).Mul(p.ContactRate).Round(2)
	return hours, amount, nil
}
