package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

func TestMinuteInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    MinuteInterval
		b    MinuteInterval
		want bool
	}{
		{
			name: "identical intervals",
			a:    MinuteInterval{Start: 600, End: 660},
			b:    MinuteInterval{Start: 600, End: 660},
			want: true,
		},
		{
			name: "partial overlap",
			a:    MinuteInterval{Start: 600, End: 660},
			b:    MinuteInterval{Start: 630, End: 690},
			want: true,
		},
		{
			name: "containment",
			a:    MinuteInterval{Start: 600, End: 720},
			b:    MinuteInterval{Start: 630, End: 660},
			want: true,
		},
		{
			name: "touching end to start does not overlap",
			a:    MinuteInterval{Start: 600, End: 660},
			b:    MinuteInterval{Start: 660, End: 720},
			want: false,
		},
		{
			name: "touching start to end does not overlap",
			a:    MinuteInterval{Start: 660, End: 720},
			b:    MinuteInterval{Start: 600, End: 660},
			want: false,
		},
		{
			name: "disjoint",
			a:    MinuteInterval{Start: 540, End: 600},
			b:    MinuteInterval{Start: 720, End: 780},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestMinuteInterval_WithBuffers(t *testing.T) {
	i := MinuteInterval{Start: 600, End: 660}

	assert.Equal(t, MinuteInterval{Start: 585, End: 670}, i.WithBuffers(15, 10))
	assert.Equal(t, i, i.WithBuffers(0, 0))

	// buffer may push the start below midnight
	early := MinuteInterval{Start: 10, End: 70}
	assert.Equal(t, MinuteInterval{Start: -20, End: 70}, early.WithBuffers(30, 0))
}

func TestBooking_Interval(t *testing.T) {
	b := &Booking{StartTime: types.TimeString("10:00"), DurationMinutes: 60}

	i, err := b.Interval()
	require.NoError(t, err)
	assert.Equal(t, MinuteInterval{Start: 600, End: 660}, i)

	bad := &Booking{StartTime: types.TimeString("nonsense"), DurationMinutes: 60}
	_, err = bad.Interval()
	assert.Error(t, err)
}

func activeBooking(id int64, start types.TimeString, durationMinutes int) *Booking {
	return &Booking{
		ID:              id,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		Status:          StatusConfirmed,
	}
}

func TestCountOverlapping(t *testing.T) {
	candidate := MinuteInterval{Start: 600, End: 660} // 10:00-11:00

	t.Run("no bookings", func(t *testing.T) {
		assert.Equal(t, 0, CountOverlapping(candidate, nil, 0, 0))
	})

	t.Run("counts overlapping active bookings", func(t *testing.T) {
		bookings := []*Booking{
			activeBooking(1, "10:00", 60),
			activeBooking(2, "10:30", 60),
			activeBooking(3, "11:00", 60), // touches candidate end, no overlap
		}
		assert.Equal(t, 2, CountOverlapping(candidate, bookings, 0, 0))
	})

	t.Run("inactive bookings are ignored", func(t *testing.T) {
		cancelled := activeBooking(1, "10:00", 60)
		cancelled.Status = StatusCancelled
		completed := activeBooking(2, "10:00", 60)
		completed.Status = StatusCompleted

		bookings := []*Booking{cancelled, completed, activeBooking(3, "10:00", 60)}
		assert.Equal(t, 1, CountOverlapping(candidate, bookings, 0, 0))
	})

	t.Run("buffer expands the existing booking only", func(t *testing.T) {
		// 09:00-10:00 touches the candidate without buffers
		bookings := []*Booking{activeBooking(1, "09:00", 60)}

		assert.Equal(t, 0, CountOverlapping(candidate, bookings, 0, 0))
		assert.Equal(t, 1, CountOverlapping(candidate, bookings, 0, 15))
		// a before-buffer alone does not reach forward
		assert.Equal(t, 0, CountOverlapping(candidate, bookings, 15, 0))
	})

	t.Run("skipIDs excludes the named booking", func(t *testing.T) {
		bookings := []*Booking{
			activeBooking(7, "10:00", 60),
			activeBooking(8, "10:15", 60),
		}

		assert.Equal(t, 2, CountOverlapping(candidate, bookings, 0, 0))
		assert.Equal(t, 1, CountOverlapping(candidate, bookings, 0, 0, 7))
		assert.Equal(t, 0, CountOverlapping(candidate, bookings, 0, 0, 7, 8))
	})

	t.Run("malformed start time is skipped", func(t *testing.T) {
		bad := activeBooking(1, "not-a-time", 60)
		assert.Equal(t, 0, CountOverlapping(candidate, []*Booking{bad}, 0, 0))
	})
}
