package domain

import (
	"time"

	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// ServiceScheduleConfig represents the availability configuration of one
// service at one company. It is loaded once per scheduling request and
// treated as an immutable snapshot afterwards.
type ServiceScheduleConfig struct {
	ID        int64
	CompanyID int64
	ServiceID int64

	DurationMinutes int
	AvailableDays   []time.Weekday
	StartTime       types.TimeString
	EndTime         types.TimeString

	MaxBookingsPerSlot  int
	BufferBeforeMinutes int
	BufferAfterMinutes  int

	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int

	// AssignedEmployeeIDs lists employees eligible to fulfil the service.
	// An empty list means the service is not bound to particular employees.
	AssignedEmployeeIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsDayAvailable reports whether the service works on the given weekday
func (c *ServiceScheduleConfig) IsDayAvailable(day time.Weekday) bool {
	for _, d := range c.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsBookable reports whether the config can produce any slot at all
func (c *ServiceScheduleConfig) IsBookable() bool {
	return len(c.AvailableDays) > 0 && c.StartTime.IsBefore(c.EndTime)
}

// HasAdvanceBookingLimit returns true if there is a limit on how far in
// advance bookings can be made
func (c *ServiceScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// RequiresAssignedEmployee reports whether bookings must name one of the
// assigned employees
func (c *ServiceScheduleConfig) RequiresAssignedEmployee() bool {
	return len(c.AssignedEmployeeIDs) > 0
}

// IsEmployeeAssigned reports whether the employee may fulfil this service
func (c *ServiceScheduleConfig) IsEmployeeAssigned(employeeID int64) bool {
	for _, id := range c.AssignedEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}
