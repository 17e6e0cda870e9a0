package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/billing"
	invoicestore "github.com/warp/payroll-engine/billing/store"
	"github.com/warp/payroll-engine/events"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestAggregator(t *testing.T) (*billing.Aggregator, *events.Memory, *invoicestore.Memory) {
	t.Helper()

	source := events.NewMemory()
	store := invoicestore.NewMemory()
	return billing.NewAggregator(source, store), source, store
}

func acmeParams() billing.GenerateParams {
	return billing.GenerateParams{
		ClientID:    "client-1",
		ClientName:  "Acme Textiles",
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-31",
		ContactRate: decimal.NewFromInt(500),
		VATPercent:  decimal.NewFromInt(15),
	}
}

func seedAcmeMonth(t *testing.T, ctx context.Context, source *events.Memory) {
	t.Helper()

	// 2 Present guard shifts, one Absent (not billable)
	for i, status := range []string{events.GuardStatusPresent, events.GuardStatusPresent, events.GuardStatusAbsent} {
		require.NoError(t, source.RecordGuardDuty(ctx, events.GuardDutyRecord{
			ID: "gd-" + string(rune('1'+i)), EmployeeID: "emp-1", EmployeeName: "Karim Uddin",
			ClientName: "Acme Textiles", Date: "2026-08-0" + string(rune('3'+i)),
			Shift: "Night", Status: status,
		}))
	}

	// 9 labor hours: one labor-day at the contact rate
	require.NoError(t, source.RecordDayLabor(ctx, events.DayLaborRecord{
		ID: "dl-1", EmployeeID: "emp-2", EmployeeName: "Rafiq Mia",
		ClientName: "Acme Textiles", Date: "2026-08-10", HoursWorked: "9",
	}))

	// 2 escort days, no conveyance
	require.NoError(t, source.RecordEscortDuty(ctx, events.EscortDutyRecord{
		ID: "ed-1", EmployeeID: "emp-2", EmployeeName: "Rafiq Mia",
		ClientName: "Acme Textiles", StartDate: "2026-08-12", EndDate: "2026-08-13",
		Status: events.EscortStatusActive, TotalDays: "2", Conveyance: "0",
	}))
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestGenerate_InvoiceArithmetic(t *testing.T) {
	// guard 2 x 500 = 1000, labor 9h = 500, escort 2 x 500 = 1000
	// subtotal 2500, vat 15% = 375, total 2875

	agg, source, _ := newTestAggregator(t)
	ctx := context.Background()
	seedAcmeMonth(t, ctx, source)

	inv, err := agg.Generate(ctx, acmeParams())
	require.NoError(t, err)

	assert.Equal(t, "2", inv.GuardDays.String())
	assert.Equal(t, "1000.00", inv.GuardAmount.StringFixed(2))
	assert.Equal(t, "9", inv.LaborHours.String())
	assert.Equal(t, "500.00", inv.LaborAmount.StringFixed(2))
	assert.Equal(t, "2", inv.EscortDays.String())
	assert.Equal(t, "1000.00", inv.EscortAmount.StringFixed(2))
	assert.Equal(t, "2500.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "375.00", inv.VATAmount.StringFixed(2))
	assert.Equal(t, "2875.00", inv.Total.StringFixed(2))
	assert.Equal(t, billing.StatusDraft, inv.Status)
}

func TestGenerate_EscortConveyanceAddedOnTop(t *testing.T) {
	agg, source, _ := newTestAggregator(t)
	ctx := context.Background()

	require.NoError(t, source.RecordEscortDuty(ctx, events.EscortDutyRecord{
		ID: "ed-1", EmployeeID: "emp-2", EmployeeName: "Rafiq Mia",
		ClientName: "Acme Textiles", StartDate: "2026-08-12", EndDate: "2026-08-14",
		Status: events.EscortStatusActive, TotalDays: "2.5", Conveyance: "150",
	}))

	inv, err := agg.Generate(ctx, acmeParams())
	require.NoError(t, err)

	// 2.5 x 500 + 150 = 1400
	assert.Equal(t, "1400.00", inv.EscortAmount.StringFixed(2))
	assert.Equal(t, "1400.00", inv.Subtotal.StringFixed(2))
}

func TestGenerate_EmptyPeriod_ZeroTotals(t *testing.T) {
	agg, _, _ := newTestAggregator(t)

	inv, err := agg.Generate(context.Background(), acmeParams())
	require.NoError(t, err)

	assert.Equal(t, "0.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", inv.VATAmount.StringFixed(2))
	assert.Equal(t, "0.00", inv.Total.StringFixed(2))
	assert.Equal(t, billing.StatusDraft, inv.Status)
}

// =============================================================================
// FILTERING
// =============================================================================

func TestGenerate_OtherClientsExcluded(t *testing.T) {
	agg, source, _ := newTestAggregator(t)
	ctx := context.Background()
	seedAcmeMonth(t, ctx, source)

	require.NoError(t, source.RecordGuardDuty(ctx, events.GuardDutyRecord{
		ID: "gd-x", EmployeeID: "emp-3", EmployeeName: "Jamal Hossain",
		ClientName: "Delta Shipping", Date: "2026-08-05", Shift: "Day",
		Status: events.GuardStatusPresent,
	}))

	inv, err := agg.Generate(ctx, acmeParams())
	require.NoError(t, err)
	assert.Equal(t, "2", inv.GuardDays.String())
}

func TestGenerate_EscortOverlap_Inclusive(t *testing.T) {
	// An assignment straddling the period start still counts; one entirely
	// before the period does not.

	agg, source, _ := newTestAggregator(t)
	ctx := context.Background()

	require.NoError(t, source.RecordEscortDuty(ctx, events.EscortDutyRecord{
		ID: "ed-straddle", EmployeeID: "emp-2", EmployeeName: "Rafiq Mia",
		ClientName: "Acme Textiles", StartDate: "2026-07-30", EndDate: "2026-08-01",
		Status: events.EscortStatusActive, TotalDays: "3", Conveyance: "0",
	}))
	require.NoError(t, source.RecordEscortDuty(ctx, events.EscortDutyRecord{
		ID: "ed-before", EmployeeID: "emp-2", EmployeeName: "Rafiq Mia",
		ClientName: "Acme Textiles", StartDate: "2026-07-01", EndDate: "2026-07-05",
		Status: events.EscortStatusActive, TotalDays: "5", Conveyance: "0",
	}))

	inv, err := agg.Generate(ctx, acmeParams())
	require.NoError(t, err)
	assert.Equal(t, "3", inv.EscortDays.String())
}

func TestGenerate_PeriodBoundariesInclusive(t *testing.T) {
	agg, source, _ := newTestAggregator(t)
	ctx := context.Background()

	for i, date := range []string{"2026-07-31", "2026-08-01", "2026-08-31", "2026-09-01"} {
		require.NoError(t, source.RecordGuardDuty(ctx, events.GuardDutyRecord{
			ID: "gd-" + string(rune('1'+i)), EmployeeID: "emp-1", EmployeeName: "Karim Uddin",
			ClientName: "Acme Textiles", Date: date, Shift: "Day",
			Status: events.GuardStatusPresent,
		}))
	}

	inv, err := agg.Generate(ctx, acmeParams())
	require.NoError(t, err)
	assert.Equal(t, "2", inv.GuardDays.String())
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestGenerate_RejectsInvalidParams(t *testing.T) {
	agg, _, _ := newTestAggregator(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*billing.GenerateParams)
		field  string
	}{
		{"missing client name", func(p *billing.GenerateParams) { p.ClientName = "" }, "clientName"},
		{"malformed start date", func(p *billing.GenerateParams) { p.PeriodStart = "08/01/2026" }, "periodStart"},
		{"malformed end date", func(p *billing.GenerateParams) { p.PeriodEnd = "soon" }, "periodEnd"},
		{"end before start", func(p *billing.GenerateParams) { p.PeriodEnd = "2026-07-01" }, "period"},
		{"negative rate", func(p *billing.GenerateParams) { p.ContactRate = decimal.NewFromInt(-1) }, "contactRate"},
		{"vat over 100", func(p *billing.GenerateParams) { p.VATPercent = decimal.NewFromInt(120) }, "vatPercent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := acmeParams()
			tc.mutate(&p)

			_, err := agg.Generate(ctx, p)
			require.Error(t, err)

			var verr *billing.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

// =============================================================================
// NUMBERING
// =============================================================================

func TestGenerate_NumbersMonotonic_NeverReused(t *testing.T) {
	// Deleting a draft must not free its number for the next invoice.

	agg, _, store := newTestAggregator(t)
	ctx := context.Background()

	first, err := agg.Generate(ctx, acmeParams())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Number)

	require.NoError(t, store.DeleteDraft(ctx, first.ID))

	second, err := agg.Generate(ctx, acmeParams())
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Number)
	assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2026-0001", billing.FormatInvoiceNumber(2026, 1))
	assert.Equal(t, "INV-2026-0042", billing.FormatInvoiceNumber(2026, 42))
	assert.Equal(t, "INV-2027-12345", billing.FormatInvoiceNumber(2027, 12345))
}
