// Package store provides billing.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/payroll-engine/billing"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	invoices map[string]billing.Invoice
	counter  int64
}

func NewMemory() *Memory {
	return &Memory{invoices: make(map[string]billing.Invoice)}
}

var _ billing.Store = (*Memory)(nil)

func (m *Memory) Create(_ context.Context, inv billing.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (billing.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.invoices[id]
	if !ok {
		return billing.Invoice{}, billing.ErrInvoiceNotFound
	}
	return inv, nil
}

func (m *Memory) List(_ context.Context, f billing.InvoiceFilter) ([]billing.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []billing.Invoice
	for _, inv := range m.invoices {
		if f.Matches(inv) {
			result = append(result, inv)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

// TransitionStatus performs the check-and-write under one lock: the
// compare-and-set the lifecycle manager relies on.
func (m *Memory) TransitionStatus(_ context.Context, id string, from, to billing.Status) (billing.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invoices[id]
	if !ok {
		return billing.Invoice{}, billing.ErrInvoiceNotFound
	}
	if inv.Status != from {
		return billing.Invoice{}, &billing.InvalidStateError{ID: id, Status: inv.Status, Action: transitionAction(to)}
	}

	inv.Status = to
	m.invoices[id] = inv
	return inv, nil
}

func (m *Memory) DeleteDraft(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inv, ok := m.invoices[id]
	if !ok {
		return billing.ErrInvoiceNotFound
	}
	if inv.Status != billing.StatusDraft {
		return &billing.InvalidStateError{ID: id, Status: inv.Status, Action: "delete"}
	}

	delete(m.invoices, id)
	return nil
}

func (m *Memory) NextNumber(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return m.counter, nil
}

func transitionAction(to billing.Status) string {
	switch to {
	case billing.StatusFinalized:
		return "finalize"
	case billing.StatusPaid:
		return "mark-paid"
	default:
		return "transition"
	}
}
