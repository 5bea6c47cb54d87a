package domain

import (
	"time"

	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusInProgress  BookingStatus = "in_progress"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRejected    BookingStatus = "rejected"
	StatusRescheduled BookingStatus = "rescheduled"
)

// statusTransitions is the full lifecycle of a booking. A valid status
// missing from the map is terminal. Any transition not listed here is
// illegal, whatever the caller's role.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:     {StatusConfirmed, StatusCancelled, StatusRejected},
	StatusConfirmed:   {StatusInProgress, StatusCancelled, StatusRescheduled},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusConfirmed, StatusCancelled},
}

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRejected, StatusRescheduled:
		return true
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
// Terminal bookings are kept for history and never become active again.
func (s BookingStatus) IsTerminal() bool {
	_, hasOutgoing := statusTransitions[s]
	return s.IsValid() && !hasOutgoing
}

// CanTransitionTo reports whether the status machine allows s -> target
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal target statuses from s
func (s BookingStatus) AllowedTransitions() []BookingStatus {
	return statusTransitions[s]
}

// Booking represents a reservation of one service slot in the system
type Booking struct {
	ID         int64
	CustomerID int64
	CompanyID  int64
	ServiceID  int64
	EmployeeID *int64 // nil = no particular employee required

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true while the booking still occupies slot capacity
func (b *Booking) IsActive() bool {
	return !b.Status.IsTerminal()
}

// EndTime returns the derived end of the booking
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// CompanyBookingsFilter restricts company booking listings
type CompanyBookingsFilter struct {
	CompanyID       int64
	ServiceID       *int64
	EmployeeID      *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // include terminal bookings in the result
}
