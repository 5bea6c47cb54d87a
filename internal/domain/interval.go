package domain

// MinuteInterval is a half-open [Start, End) interval in minutes since
// midnight. All slot and booking comparisons are done in this form so
// that buffer expansion below 00:00 stays representable (Start may go
// negative).
type MinuteInterval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals share at least one
// instant. Touching intervals (one ends exactly where the other starts)
// do not overlap.
func (i MinuteInterval) Overlaps(other MinuteInterval) bool {
	return i.Start < other.End && other.Start < i.End
}

// WithBuffers expands the interval by blackout padding on both sides
func (i MinuteInterval) WithBuffers(beforeMinutes, afterMinutes int) MinuteInterval {
	return MinuteInterval{
		Start: i.Start - beforeMinutes,
		End:   i.End + afterMinutes,
	}
}

// Interval returns the booking's own [start, end) interval in minutes
func (b *Booking) Interval() (MinuteInterval, error) {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return MinuteInterval{}, err
	}
	return MinuteInterval{Start: start, End: start + b.DurationMinutes}, nil
}

// CountOverlapping counts active bookings whose buffer-expanded interval
// overlaps the candidate. The candidate itself is NOT expanded: the
// buffer belongs to the existing booking. Bookings whose ID is listed in
// skipIDs are ignored, so a rescheduled booking does not conflict with
// itself.
func CountOverlapping(candidate MinuteInterval, bookings []*Booking, bufferBefore, bufferAfter int, skipIDs ...int64) int {
	count := 0

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if containsID(skipIDs, booking.ID) {
			continue
		}

		interval, err := booking.Interval()
		if err != nil {
			// a booking with a malformed time cannot occupy a slot
			continue
		}

		if interval.WithBuffers(bufferBefore, bufferAfter).Overlaps(candidate) {
			count++
		}
	}

	return count
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
