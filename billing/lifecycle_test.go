package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/billing"
	invoicestore "github.com/warp/payroll-engine/billing/store"
)

func newTestLifecycle(t *testing.T) (*billing.Lifecycle, *invoicestore.Memory) {
	t.Helper()

	store := invoicestore.NewMemory()
	return billing.NewLifecycle(store), store
}

func newDraft(t *testing.T, store *invoicestore.Memory, id string) billing.Invoice {
	t.Helper()

	inv := billing.Invoice{
		ID: id, Number: 1, InvoiceNumber: "INV-2026-0001",
		ClientID: "client-1", ClientName: "Acme Textiles",
		PeriodStart: "2026-08-01", PeriodEnd: "2026-08-31",
		Status: billing.StatusDraft,
	}
	require.NoError(t, store.Create(context.Background(), inv))
	return inv
}

// =============================================================================
// HAPPY PATH
// =============================================================================

func TestLifecycle_DraftFinalizePaid(t *testing.T) {
	lc, store := newTestLifecycle(t)
	ctx := context.Background()
	newDraft(t, store, "inv-1")

	finalized, err := lc.Finalize(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, billing.StatusFinalized, finalized.Status)

	paid, err := lc.MarkPaid(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, paid.Status)

	got, err := store.Get(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, billing.StatusPaid, got.Status)
}

func TestLifecycle_DeleteDraft(t *testing.T) {
	lc, store := newTestLifecycle(t)
	ctx := context.Background()
	newDraft(t, store, "inv-1")

	require.NoError(t, lc.Delete(ctx, "inv-1"))

	_, err := store.Get(ctx, "inv-1")
	assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)
}

// =============================================================================
// ILLEGAL TRANSITIONS
// =============================================================================

func TestLifecycle_PayBeforeFinalize_Rejected(t *testing.T) {
	lc, store := newTestLifecycle(t)
	ctx := context.Background()
	newDraft(t, store, "inv-1")

	_, err := lc.MarkPaid(ctx, "inv-1")
	require.Error(t, err)

	var serr *billing.InvalidStateError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, billing.StatusDraft, serr.Status)
	assert.Equal(t, "mark-paid", serr.Action)

	// The invoice is untouched
	got, err := store.Get(ctx, "inv-1")
	require.NoError(t, err)
	assert.Equal(t, billing.StatusDraft, got.Status)
}

func TestLifecycle_FinalizeTwice_Rejected(t *testing.T) {
	lc, store := newTestLifecycle(t)
	ctx := context.Background()
	newDraft(t, store, "inv-1")

	_, err := lc.Finalize(ctx, "inv-1")
	require.NoError(t, err)

	_, err = lc.Finalize(ctx, "inv-1")
	var serr *billing.InvalidStateError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, billing.StatusFinalized, serr.Status)
}

func TestLifecycle_DeleteAfterFinalize_Rejected(t *testing.T) {
	lc, store := newTestLifecycle(t)
	ctx := context.Background()
	newDraft(t, store, "inv-1")

	_, err := lc.Finalize(ctx, "inv-1")
	require.NoError(t, err)

	err = lc.Delete(ctx, "inv-1")
	var serr *billing.InvalidStateError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "delete", serr.Action)

	// Still listed
	_, err = store.Get(ctx, "inv-1")
	assert.NoError(t, err)
}

func TestLifecycle_UnknownInvoice_NotFound(t *testing.T) {
	lc, _ := newTestLifecycle(t)
	ctx := context.Background()

	_, err := lc.Finalize(ctx, "missing")
	assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)

	_, err = lc.MarkPaid(ctx, "missing")
	assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)

	err = lc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)
}
