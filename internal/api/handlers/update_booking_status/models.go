package update_booking_status

import (
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	updateBookingStatus "github.com/m04kA/PSM-SchedulingService/internal/usecase/update_booking_status"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`

	// Обязательны при status = "rescheduled"
	NewDate      *string `json:"newDate,omitempty"`      // "2026-03-15"
	NewStartTime *string `json:"newStartTime,omitempty"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	CompanyID       int64   `json:"companyId"`
	ServiceID       int64   `json:"serviceId"`
	EmployeeID      *int64  `json:"employeeId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID, actorID int64) (*updateBookingStatus.Request, error) {
	req := &updateBookingStatus.Request{
		BookingID:    bookingID,
		ActorID:      actorID,
		TargetStatus: domain.BookingStatus(r.Status),
	}

	if r.NewDate != nil {
		newDate, err := time.Parse(domain.DateFormat, *r.NewDate)
		if err != nil {
			return nil, err
		}
		req.NewDate = &newDate
	}

	if r.NewStartTime != nil {
		newStartTime, err := types.NewTimeStringFromString(*r.NewStartTime)
		if err != nil {
			return nil, err
		}
		req.NewStartTime = &newStartTime
	}

	return req, nil
}

// FromDomainBooking конвертирует domain модель в HTTP response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		CompanyID:       b.CompanyID,
		ServiceID:       b.ServiceID,
		EmployeeID:      b.EmployeeID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
}
