/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY ON THE WIRE:
  Monetary values serialize as fixed 2-decimal strings ("1000.00") so
  clients never see float artifacts. Day/hour quantities keep their
  natural precision.

VALIDATION:
  Request structs carry go-playground/validator tags; handlers run the
  shared validator before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/billing"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// LEDGER
// =============================================================================

// LedgerEntryDTO represents one ledger entry in API responses.
type LedgerEntryDTO struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	SourceModule   string `json:"source_module"`
	SourceID       string `json:"source_id"`
	Date           string `json:"date"`
	Month          string `json:"month"`
	ShiftOrHours   string `json:"shift_or_hours"`
	EarnedAmount   string `json:"earned_amount"`
	DeductedAmount string `json:"deducted_amount"`
	NetChange      string `json:"net_change"`
	RunningBalance string `json:"running_balance"`
	CreatedAt      string `json:"created_at"`
}

func toLedgerEntryDTO(e payroll.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		EmployeeName:   e.EmployeeName,
		SourceModule:   string(e.Source),
		SourceID:       e.SourceID,
		Date:           e.Date,
		Month:          e.Month,
		ShiftOrHours:   e.ShiftOrHours,
		EarnedAmount:   e.Earned.StringFixed(2),
		DeductedAmount: e.Deducted.StringFixed(2),
		NetChange:      e.NetChange.StringFixed(2),
		RunningBalance: e.RunningBalance.StringFixed(2),
		CreatedAt:      e.CreatedAt.Format(time.RFC3339),
	}
}

// DeriveResultDTO is the response of a derivation run.
type DeriveResultDTO struct {
	EntriesGenerated int `json:"entries_generated"`
	CoercedFields    int `json:"coerced_fields"`
}

// BalanceDTO is an employee's current running balance.
type BalanceDTO struct {
	EmployeeID string `json:"employee_id"`
	Balance    string `json:"balance"`
}

// =============================================================================
// INVOICES
// =============================================================================

// GenerateInvoiceRequest is the request body for invoice generation.
type GenerateInvoiceRequest struct {
	ClientID    string  `json:"client_id"`
	ClientName  string  `json:"client_name" validate:"required"`
	PeriodStart string  `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string  `json:"period_end" validate:"required,datetime=2006-01-02"`
	ContactRate float64 `json:"contact_rate" validate:"gte=0"`
	VATPercent  float64 `json:"vat_percent" validate:"gte=0,lte=100"`
}

// InvoiceDTO represents an invoice in API responses.
type InvoiceDTO struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoice_number"`
	ClientID      string `json:"client_id,omitempty"`
	ClientName    string `json:"client_name"`
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	EscortDays    string `json:"total_escort_days"`
	EscortAmount  string `json:"escort_amount"`
	GuardDays     string `json:"total_guard_days"`
	GuardAmount   string `json:"guard_amount"`
	LaborHours    string `json:"total_labor_hours"`
	LaborAmount   string `json:"labor_amount"`
	Subtotal      string `json:"subtotal"`
	VATPercent    string `json:"vat_percent"`
	VATAmount     string `json:"vat_amount"`
	TotalAmount   string `json:"total_amount"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

func toInvoiceDTO(inv billing.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		ClientName:    inv.ClientName,
		PeriodStart:   inv.PeriodStart,
		PeriodEnd:     inv.PeriodEnd,
		EscortDays:    inv.EscortDays.String(),
		EscortAmount:  inv.EscortAmount.StringFixed(2),
		GuardDays:     inv.GuardDays.String(),
		GuardAmount:   inv.GuardAmount.StringFixed(2),
		LaborHours:    inv.LaborHours.String(),
		LaborAmount:   inv.LaborAmount.StringFixed(2),
		Subtotal:      inv.Subtotal.StringFixed(2),
		VATPercent:    inv.VATPercent.String(),
		VATAmount:     inv.VATAmount.StringFixed(2),
		TotalAmount:   inv.Total.StringFixed(2),
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
	}
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
