package cancel_booking

import (
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelledBookingResponse HTTP response model
type CancelledBookingResponse struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
}

// FromDomainBooking конвертирует domain модель в HTTP response
func FromDomainBooking(b *domain.Booking) *CancelledBookingResponse {
	resp := &CancelledBookingResponse{
		ID:                 b.ID,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}
