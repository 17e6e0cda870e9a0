/*
handlers.go - HTTP API handlers for the payroll ledger & billing engine

PURPOSE:
  Exposes the engine via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Ledger:
    POST   /api/ledger/derive               Run ledger derivation
    GET    /api/ledger                      Query entries (?employee_id=&month=)
    GET    /api/ledger/balance/{employeeID} Current running balance

  Invoices:
    POST   /api/invoices                    Generate a Draft invoice
    GET    /api/invoices                    List (?client_id=&from=&to=)
    GET    /api/invoices/{id}               Get one invoice
    POST   /api/invoices/{id}/finalize      Draft -> Finalized
    POST   /api/invoices/{id}/pay           Finalized -> Paid
    DELETE /api/invoices/{id}               Delete (Draft only)

  Scenarios:
    POST   /api/scenarios/load              Seed demo upstream data (dev)

ERROR HANDLING:
  Domain errors map to HTTP statuses:
  - 400: validation errors, malformed input
  - 404: unknown invoice id
  - 409: lifecycle state violations, duplicate events
  - 500: store/source failures

SECURITY NOTE:
  No authentication or authorization; the service is expected to sit
  behind the master-data application's gateway.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduler.go: Periodic derivation
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/warp/payroll-engine/billing"
	"github.com/warp/payroll-engine/events"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Deriver     *payroll.Deriver
	LedgerStore payroll.Store
	Aggregator  *billing.Aggregator
	Lifecycle   *billing.Lifecycle
	Invoices    billing.Store
	Seed        events.Recorder // nil disables scenario loading

	validate *validator.Validate
	log      *logrus.Logger
}

// NewHandler wires a handler. A nil logger falls back to the standard one.
func NewHandler(deriver *payroll.Deriver, ledgerStore payroll.Store,
	aggregator *billing.Aggregator, lifecycle *billing.Lifecycle,
	invoices billing.Store, seed events.Recorder, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Deriver:     deriver,
		LedgerStore: ledgerStore,
		Aggregator:  aggregator,
		Lifecycle:   lifecycle,
		Invoices:    invoices,
		Seed:        seed,
		validate:    validator.New(),
		log:         log,
	}
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// DeriveLedger runs one derivation pass. POST /api/ledger/derive
func (h *Handler) DeriveLedger(w http.ResponseWriter, r *http.Request) {
	res, err := h.Deriver.Derive(r.Context())
	if err != nil {
		h.log.WithError(err).Error("ledger derivation failed")
		writeError(w, http.StatusInternalServerError, "derivation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, DeriveResultDTO{
		EntriesGenerated: res.EntriesGenerated,
		CoercedFields:    res.Coerced,
	})
}

// QueryLedger returns ledger entries. GET /api/ledger?employee_id=&month=
func (h *Handler) QueryLedger(w http.ResponseWriter, r *http.Request) {
	f := payroll.Filter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      r.URL.Query().Get("month"),
	}

	entries, err := h.LedgerStore.Query(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ledger query failed", err)
		return
	}

	dtos := make([]LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toLedgerEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetBalance returns an employee's current running balance.
// GET /api/ledger/balance/{employeeID}
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		writeError(w, http.StatusBadRequest, "employee id is required", nil)
		return
	}

	balance, err := h.LedgerStore.CurrentBalance(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "balance lookup failed", err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceDTO{
		EmployeeID: employeeID,
		Balance:    balance.StringFixed(2),
	})
}

// =============================================================================
// INVOICE HANDLERS
// =============================================================================

// GenerateInvoice creates a Draft invoice. POST /api/invoices
func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var req GenerateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err)
		return
	}

	inv, err := h.Aggregator.Generate(r.Context(), billing.GenerateParams{
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		ContactRate: decimalFromFloat(req.ContactRate),
		VATPercent:  decimalFromFloat(req.VATPercent),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInvoiceDTO(inv))
}

// ListInvoices lists invoices. GET /api/invoices?client_id=&from=&to=
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	f := billing.InvoiceFilter{
		ClientID: r.URL.Query().Get("client_id"),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}

	invoices, err := h.Invoices.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "invoice listing failed", err)
		return
	}

	dtos := make([]InvoiceDTO, 0, len(invoices))
	for _, inv := range invoices {
		dtos = append(dtos, toInvoiceDTO(inv))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetInvoice returns one invoice. GET /api/invoices/{id}
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Invoices.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceDTO(inv))
}

// FinalizeInvoice moves Draft -> Finalized. POST /api/invoices/{id}/finalize
func (h *Handler) FinalizeInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Lifecycle.Finalize(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceDTO(inv))
}

// MarkInvoicePaid moves Finalized -> Paid. POST /api/invoices/{id}/pay
func (h *Handler) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	inv, err := h.Lifecycle.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvoiceDTO(inv))
}

// DeleteInvoice removes a Draft invoice. DELETE /api/invoices/{id}
func (h *Handler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Lifecycle.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// MISC HANDLERS
// =============================================================================

// Health is a liveness probe. GET /api/health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// LoadScenario seeds demo upstream data. POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	if h.Seed == nil {
		writeError(w, http.StatusNotFound, "scenario loading is disabled", nil)
		return
	}

	counts, err := LoadDemoData(r.Context(), h.Seed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "scenario load failed", err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// =============================================================================
// HELPERS
// =============================================================================

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain error kinds to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case billing.IsValidation(err):
		writeError(w, http.StatusBadRequest, "invalid request", err)
	case billing.IsNotFound(err):
		writeError(w, http.StatusNotFound, "invoice not found", err)
	case billing.IsInvalidState(err):
		writeError(w, http.StatusConflict, "invalid invoice state", err)
	case errors.Is(err, payroll.ErrDuplicateEvent):
		writeError(w, http.StatusConflict, "event already processed", err)
	default:
		h.log.WithError(err).Error("internal error")
		writeError(w, http.StatusInternalServerError, "internal error", err)
	}
}
