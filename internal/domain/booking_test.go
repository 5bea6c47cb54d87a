package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending,
		StatusConfirmed,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusRejected,
		StatusRescheduled,
	}
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range allStatuses() {
		assert.True(t, s.IsValid(), "status %s must be valid", s)
	}

	assert.False(t, BookingStatus("").IsValid())
	assert.False(t, BookingStatus("no_show").IsValid())
	assert.False(t, BookingStatus("PENDING").IsValid())
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		StatusCompleted: true,
		StatusCancelled: true,
		StatusRejected:  true,
	}

	for _, s := range allStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), "status %s", s)
	}

	assert.False(t, BookingStatus("garbage").IsTerminal())
}

// TestBookingStatus_TransitionClosure checks every status pair against
// the full transition table.
func TestBookingStatus_TransitionClosure(t *testing.T) {
	allowed := map[BookingStatus]map[BookingStatus]bool{
		StatusPending:     {StatusConfirmed: true, StatusCancelled: true, StatusRejected: true},
		StatusConfirmed:   {StatusInProgress: true, StatusCancelled: true, StatusRescheduled: true},
		StatusInProgress:  {StatusCompleted: true, StatusCancelled: true},
		StatusRescheduled: {StatusConfirmed: true, StatusCancelled: true},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_TerminalHasNoTransitions(t *testing.T) {
	for _, from := range []BookingStatus{StatusCompleted, StatusCancelled, StatusRejected} {
		require.Empty(t, from.AllowedTransitions(), "terminal status %s", from)
		for _, to := range allStatuses() {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_NoSelfTransitions(t *testing.T) {
	for _, s := range allStatuses() {
		assert.False(t, s.CanTransitionTo(s), "status %s", s)
	}
}

func TestBooking_IsActive(t *testing.T) {
	b := &Booking{Status: StatusConfirmed}
	assert.True(t, b.IsActive())

	b.Status = StatusCancelled
	assert.False(t, b.IsActive())

	b.Status = StatusCompleted
	assert.False(t, b.IsActive())
}

func TestBooking_EndTime(t *testing.T) {
	b := &Booking{StartTime: "10:00", DurationMinutes: 90}

	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "11:30", end.String())
}
