package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/events"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"500", "500", true},
		{"2.5", "2.5", true},
		{"-300", "-300", true},
		{"", "0", true}, // absent optional field
		{"nine", "0", false},
		{"12h", "0", false},
	}

	for _, tc := range cases {
		got, ok := events.ParseAmount(tc.raw)
		assert.Equal(t, tc.ok, ok, "ok for %q", tc.raw)
		assert.Equal(t, tc.want, got.String(), "value for %q", tc.raw)
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, events.InRange("2026-08-15", "2026-08-01", "2026-08-31"))
	assert.True(t, events.InRange("2026-08-01", "2026-08-01", "2026-08-31"))
	assert.True(t, events.InRange("2026-08-31", "2026-08-01", "2026-08-31"))
	assert.False(t, events.InRange("2026-07-31", "2026-08-01", "2026-08-31"))
	assert.False(t, events.InRange("2026-09-01", "2026-08-01", "2026-08-31"))

	// Empty bounds are open
	assert.True(t, events.InRange("1999-01-01", "", "2026-08-31"))
	assert.True(t, events.InRange("2099-01-01", "2026-08-01", ""))
}

func TestOverlaps(t *testing.T) {
	// Straddling either boundary counts
	assert.True(t, events.Overlaps("2026-07-30", "2026-08-01", "2026-08-01", "2026-08-31"))
	assert.True(t, events.Overlaps("2026-08-31", "2026-09-02", "2026-08-01", "2026-08-31"))
	assert.True(t, events.Overlaps("2026-08-10", "2026-08-12", "2026-08-01", "2026-08-31"))
	assert.False(t, events.Overlaps("2026-07-01", "2026-07-31", "2026-08-01", "2026-08-31"))
	assert.False(t, events.Overlaps("2026-09-01", "2026-09-05", "2026-08-01", "2026-08-31"))
}

func TestMemory_InsertionOrderAndCopies(t *testing.T) {
	m := events.NewMemory()
	ctx := context.Background()

	for _, id := range []string{"gd-1", "gd-2", "gd-3"} {
		require.NoError(t, m.RecordGuardDuty(ctx, events.GuardDutyRecord{
			ID: id, EmployeeName: "Karim Uddin", Date: "2026-08-03",
			Status: events.GuardStatusPresent,
		}))
	}

	records, err := m.GuardDuty(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "gd-1", records[0].ID)
	assert.Equal(t, "gd-3", records[2].ID)

	// Mutating the returned slice must not affect the store
	records[0].ID = "tampered"
	again, err := m.GuardDuty(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gd-1", again[0].ID)
}
