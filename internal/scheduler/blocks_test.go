package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/marty/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

func block(day, startHour, startMin, endHour, endMin int) domain.WorkBlock {
	return domain.WorkBlock{Interval: domain.Interval{Start: at(day, startHour, startMin), End: at(day, endHour, endMin)}}
}

func busy(day, startHour, startMin, endHour, endMin int) domain.BusyInterval {
	return domain.NewBusyInterval(at(day, startHour, startMin), at(day, endHour, endMin))
}

func baseRequest(hours float64) PlanRequest {
	now := at(10, 12, 0)
	return PlanRequest{
		RequiredHours: hours,
		Now:           now,
		Deadline:      ResolveDeadline("next week", now),
		Window:        domain.DefaultWorkWindow,
		BlockHours:    DefaultBlockHours,
	}
}

func TestPlanBlocks_FiveHoursNoBusy(t *testing.T) {
	got := PlanBlocks(baseRequest(5))

	want := []domain.WorkBlock{
		block(10, 17, 0, 19, 0),
		block(11, 17, 0, 19, 0),
		block(12, 17, 0, 18, 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PlanBlocks mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanBlocks_BusyDayIsSkippedEntirely(t *testing.T) {
	req := baseRequest(2)
	req.Busy = []domain.BusyInterval{busy(10, 17, 0, 18, 0)}

	got := PlanBlocks(req)

	require.Len(t, got, 1)
	assert.Equal(t, block(11, 17, 0, 19, 0), got[0])
}

func TestPlanBlocks_LateConflictStillForfeitsDay(t *testing.T) {
	req := baseRequest(2)
	// Only the last half hour is taken, but the whole evening is skipped.
	req.Busy = []domain.BusyInterval{busy(10, 20, 30, 21, 30)}

	got := PlanBlocks(req)

	require.Len(t, got, 1)
	assert.Equal(t, 11, got[0].Start.Day())
}

func TestPlanBlocks_TouchingEventsDoNotConflict(t *testing.T) {
	req := baseRequest(2)
	req.Busy = []domain.BusyInterval{
		busy(10, 15, 0, 17, 0),
		busy(10, 21, 0, 22, 0),
	}

	got := PlanBlocks(req)

	require.Len(t, got, 1)
	assert.Equal(t, block(10, 17, 0, 19, 0), got[0])
}

func TestPlanBlocks_InfeasibleBeforeDeadline(t *testing.T) {
	req := baseRequest(2)
	req.Deadline = time.Date(2025, 3, 11, 23, 59, 0, 0, time.UTC)
	req.Busy = []domain.BusyInterval{
		busy(10, 17, 30, 18, 0),
		busy(11, 20, 0, 22, 0),
	}

	assert.Empty(t, PlanBlocks(req))
}

func TestPlanBlocks_PartialPlacementIsInfeasible(t *testing.T) {
	req := baseRequest(6)
	req.Deadline = time.Date(2025, 3, 11, 23, 59, 0, 0, time.UTC)

	// Two evenings hold 4h of the 6h needed.
	assert.Empty(t, PlanBlocks(req))
}

func TestPlanBlocks_StartAfterWindowOpensMovesToTomorrow(t *testing.T) {
	req := baseRequest(2)
	req.Now = at(10, 18, 20)

	got := PlanBlocks(req)

	require.Len(t, got, 1)
	assert.Equal(t, block(11, 17, 0, 19, 0), got[0])
}

func TestPlanBlocks_CursorRoundsUpToHour(t *testing.T) {
	req := baseRequest(1)
	req.Now = at(10, 16, 1)

	got := PlanBlocks(req)

	require.Len(t, got, 1)
	assert.Equal(t, block(10, 17, 0, 18, 0), got[0])
}

func TestPlanBlocks_FractionalHours(t *testing.T) {
	got := PlanBlocks(baseRequest(3.5))

	want := []domain.WorkBlock{
		block(10, 17, 0, 19, 0),
		block(11, 17, 0, 18, 30),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PlanBlocks mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanBlocks_InvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanRequest)
	}{
		{"zero hours", func(r *PlanRequest) { r.RequiredHours = 0 }},
		{"negative hours", func(r *PlanRequest) { r.RequiredHours = -3 }},
		{"zero block", func(r *PlanRequest) { r.BlockHours = 0 }},
		{"inverted window", func(r *PlanRequest) { r.Window = domain.WorkWindow{StartHour: 21, EndHour: 17} }},
		{"block longer than window", func(r *PlanRequest) { r.BlockHours = 5 }},
		{"deadline already passed", func(r *PlanRequest) { r.Deadline = r.Now.Add(-time.Hour) }},
		{"hours overflow duration", func(r *PlanRequest) { r.RequiredHours = 153722867.28 }},
		{"hours far past duration range", func(r *PlanRequest) { r.RequiredHours = 1e18 }},
		{"under half a minute", func(r *PlanRequest) { r.RequiredHours = 0.001 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest(2)
			tt.mutate(&req)
			assert.Empty(t, PlanBlocks(req))
		})
	}
}

func TestPlanBlocks_DoesNotMutateBusy(t *testing.T) {
	req := baseRequest(4)
	req.Busy = []domain.BusyInterval{busy(10, 17, 0, 18, 0), busy(12, 9, 0, 10, 0)}
	before := append([]domain.BusyInterval(nil), req.Busy...)

	PlanBlocks(req)

	assert.Equal(t, before, req.Busy)
}

func TestPlanBlocks_UsesCallerLocation(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	req := baseRequest(2)
	req.Now = time.Date(2025, 3, 10, 12, 0, 0, 0, est)
	req.Deadline = ResolveDeadline("next week", req.Now)

	got := PlanBlocks(req)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 3, 10, 17, 0, 0, 0, est), got[0].Start)
}

func TestSessionCount(t *testing.T) {
	assert.Equal(t, 3, SessionCount(5, 2))
	assert.Equal(t, 1, SessionCount(2, 2))
	assert.Equal(t, 1, SessionCount(0.5, 2))
	assert.Equal(t, 0, SessionCount(0, 2))
	assert.Equal(t, 0, SessionCount(3, 0))
	assert.Equal(t, 0, SessionCount(1e18, 2), "overflowing hours count no sessions")
}

func TestValidHours(t *testing.T) {
	tests := []struct {
		h    float64
		want bool
	}{
		{2, true},
		{1.0 / 60, true},
		{MaxRequiredHours, true},
		{0.001, false},
		{0, false},
		{MaxRequiredHours + 1, false},
		{153722867.28, false},
		{1e9, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidHours(tt.h), "hours %g", tt.h)
	}
}
