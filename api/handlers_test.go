/*
handlers_test.go - HTTP-level tests for the API

Tests for:
- Ledger derivation and querying over HTTP
- Invoice generation, lifecycle transitions and listing
- Domain-error to status-code mapping (400 / 404 / 409)
*/
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/billing"
	invoicestore "github.com/warp/payroll-engine/billing/store"
	"github.com/warp/payroll-engine/events"
	"github.com/warp/payroll-engine/payroll"
	ledgerstore "github.com/warp/payroll-engine/payroll/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type testServer struct {
	server *httptest.Server
	source *events.Memory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	source := events.NewMemory()
	ledger := ledgerstore.NewMemory()
	invoices := invoicestore.NewMemory()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	deriver := payroll.NewDeriver(source, ledger, payroll.DefaultConfig(), log)
	aggregator := billing.NewAggregator(source, invoices)
	lifecycle := billing.NewLifecycle(invoices)

	handler := api.NewHandler(deriver, ledger, aggregator, lifecycle, invoices, source, log)
	srv := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(srv.Close)

	return &testServer{server: srv, source: source}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (ts *testServer) seedGuardShift(t *testing.T, id, date string) {
	t.Helper()
	require.NoError(t, ts.source.RecordGuardDuty(context.Background(), events.GuardDutyRecord{
		ID: id, EmployeeID: "emp-1", EmployeeName: "Karim Uddin",
		ClientName: "Acme Textiles", Date: date, Shift: "Night",
		Status: events.GuardStatusPresent,
	}))
}

func invoiceRequest() map[string]any {
	return map[string]any{
		"client_id":    "client-1",
		"client_name":  "Acme Textiles",
		"period_start": "2026-08-01",
		"period_end":   "2026-08-31",
		"contact_rate": 500,
		"vat_percent":  15,
	}
}

// =============================================================================
// LEDGER ENDPOINTS
// =============================================================================

func TestAPI_DeriveAndQueryLedger(t *testing.T) {
	ts := newTestServer(t)
	ts.seedGuardShift(t, "gd-1", "2026-08-03")
	ts.seedGuardShift(t, "gd-2", "2026-08-04")

	resp := ts.do(t, http.MethodPost, "/api/ledger/derive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[map[string]int](t, resp)
	assert.Equal(t, 2, result["entries_generated"])
	assert.Equal(t, 0, result["coerced_fields"])

	// Second derive is a no-op, still 200
	resp = ts.do(t, http.MethodPost, "/api/ledger/derive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result = decodeBody[map[string]int](t, resp)
	assert.Equal(t, 0, result["entries_generated"])

	resp = ts.do(t, http.MethodGet, "/api/ledger?employee_id=emp-1&month=2026-08", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := decodeBody[[]map[string]any](t, resp)
	require.Len(t, entries, 2)
	assert.Equal(t, "Guard", entries[0]["source_module"])
	assert.Equal(t, "500.00", entries[0]["earned_amount"])
	assert.Equal(t, "1000.00", entries[1]["running_balance"])
}

func TestAPI_GetBalance(t *testing.T) {
	ts := newTestServer(t)
	ts.seedGuardShift(t, "gd-1", "2026-08-03")

	resp := ts.do(t, http.MethodPost, "/api/ledger/derive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/ledger/balance/emp-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	balance := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "emp-1", balance["employee_id"])
	assert.Equal(t, "500.00", balance["balance"])

	// Unknown employees read as zero, not 404
	resp = ts.do(t, http.MethodGet, "/api/ledger/balance/nobody", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balance = decodeBody[map[string]string](t, resp)
	assert.Equal(t, "0.00", balance["balance"])
}

// =============================================================================
// INVOICE ENDPOINTS
// =============================================================================

func TestAPI_GenerateInvoice(t *testing.T) {
	ts := newTestServer(t)
	ts.seedGuardShift(t, "gd-1", "2026-08-03")
	ts.seedGuardShift(t, "gd-2", "2026-08-04")

	resp := ts.do(t, http.MethodPost, "/api/invoices", invoiceRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	inv := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "INV-2026-0001", inv["invoice_number"])
	assert.Equal(t, "1000.00", inv["subtotal"])
	assert.Equal(t, "150.00", inv["vat_amount"])
	assert.Equal(t, "1150.00", inv["total_amount"])
	assert.Equal(t, "Draft", inv["status"])
}

func TestAPI_GenerateInvoice_ValidationFailures(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing client name", func(m map[string]any) { delete(m, "client_name") }},
		{"bad period format", func(m map[string]any) { m["period_start"] = "08/01/2026" }},
		{"negative rate", func(m map[string]any) { m["contact_rate"] = -10 }},
		{"vat over 100", func(m map[string]any) { m["vat_percent"] = 150 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := invoiceRequest()
			tc.mutate(body)

			resp := ts.do(t, http.MethodPost, "/api/invoices", body)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAPI_InvoiceLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/invoices", invoiceRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[map[string]any](t, resp)
	id := created["id"].(string)

	// Paying a Draft is a state violation
	resp = ts.do(t, http.MethodPost, "/api/invoices/"+id+"/pay", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, http.MethodPost, "/api/invoices/"+id+"/finalize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	finalized := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "Finalized", finalized["status"])

	// Finalized invoices cannot be deleted
	resp = ts.do(t, http.MethodDelete, "/api/invoices/"+id, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, http.MethodPost, "/api/invoices/"+id+"/pay", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	paid := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "Paid", paid["status"])
}

func TestAPI_DeleteDraftInvoice(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/invoices", invoiceRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[map[string]any](t, resp)
	id := created["id"].(string)

	resp = ts.do(t, http.MethodDelete, "/api/invoices/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/invoices/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_UnknownInvoice_NotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/api/invoices/missing"},
		{http.MethodPost, "/api/invoices/missing/finalize"},
		{http.MethodPost, "/api/invoices/missing/pay"},
		{http.MethodDelete, "/api/invoices/missing"},
	} {
		resp := ts.do(t, probe.method, probe.path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", probe.method, probe.path)
		resp.Body.Close()
	}
}

func TestAPI_ListInvoices_ClientFilter(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/invoices", invoiceRequest())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	other := invoiceRequest()
	other["client_id"] = "client-2"
	other["client_name"] = "Delta Shipping"
	resp = ts.do(t, http.MethodPost, "/api/invoices", other)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/invoices?client_id=client-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	invoices := decodeBody[[]map[string]any](t, resp)
	require.Len(t, invoices, 1)
	assert.Equal(t, "Acme Textiles", invoices[0]["client_name"])
}

// =============================================================================
// MISC
// =============================================================================

func TestAPI_Health(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}
