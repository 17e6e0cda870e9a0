// Package store provides payroll.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	entries   []payroll.LedgerEntry
	processed map[string]bool
	balances  map[string]decimal.Decimal
}

func NewMemory() *Memory {
	return &Memory{
		processed: make(map[string]bool),
		balances:  make(map[string]decimal.Decimal),
	}
}

var _ payroll.Store = (*Memory)(nil)

// Append records entry, marker, and balance update under one lock, so the
// check-and-append is atomic per event key.
func (m *Memory) Append(_ context.Context, entry payroll.LedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := entry.EventKey()
	if m.processed[key] {
		return &payroll.DuplicateEventError{Source: entry.Source, SourceID: entry.SourceID}
	}

	m.entries = append(m.entries, entry)
	m.processed[key] = true
	m.balances[entry.EmployeeID] = entry.RunningBalance
	return nil
}

func (m *Memory) Processed(_ context.Context, eventKey string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.processed[eventKey], nil
}

func (m *Memory) CurrentBalance(_ context.Context, employeeID string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[employeeID]; ok {
		return b, nil
	}
	return decimal.Zero, nil
}

func (m *Memory) Query(_ context.Context, f payroll.Filter) ([]payroll.LedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.LedgerEntry
	for _, e := range m.entries {
		if f.Matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Size returns the total number of entries in the ledger.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
