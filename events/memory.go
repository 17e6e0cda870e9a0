package events

import (
	"context"
	"sync"
)

// =============================================================================
// MEMORY SOURCE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is an in-memory Source and Recorder. Records are returned in
// insertion order, which is the "natural retrieval order" the deriver
// iterates in.
type Memory struct {
	mu      sync.RWMutex
	guard   []GuardDutyRecord
	labor   []DayLaborRecord
	escorts []EscortDutyRecord
	loans   []LoanAdvanceRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

var (
	_ Source   = (*Memory)(nil)
	_ Recorder = (*Memory)(nil)
)

func (m *Memory) RecordGuardDuty(_ context.Context, rec GuardDutyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guard = append(m.guard, rec)
	return nil
}

func (m *Memory) RecordDayLabor(_ context.Context, rec DayLaborRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labor = append(m.labor, rec)
	return nil
}

func (m *Memory) RecordEscortDuty(_ context.Context, rec EscortDutyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.escorts = append(m.escorts, rec)
	return nil
}

func (m *Memory) RecordLoanAdvance(_ context.Context, rec LoanAdvanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loans = append(m.loans, rec)
	return nil
}

func (m *Memory) GuardDuty(_ context.Context) ([]GuardDutyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]GuardDutyRecord, len(m.guard))
	copy(out, m.guard)
	return out, nil
}

func (m *Memory) DayLabor(_ context.Context) ([]DayLaborRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]DayLaborRecord, len(m.labor))
	copy(out, m.labor)
	return out, nil
}

func (m *Memory) EscortDuty(_ context.Context) ([]EscortDutyRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]EscortDutyRecord, len(m.escorts))
	copy(out, m.escorts)
	return out, nil
}

func (m *Memory) LoanAdvances(_ context.Context) ([]LoanAdvanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]LoanAdvanceRecord, len(m.loans))
	copy(out, m.loans)
	return out, nil
}
