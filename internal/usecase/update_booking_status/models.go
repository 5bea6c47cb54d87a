package update_booking_status

import (
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// Request запрос на изменение статуса бронирования
type Request struct {
	BookingID    int64
	ActorID      int64
	TargetStatus domain.BookingStatus

	// Заполняются только при переводе в статус rescheduled
	NewDate      *time.Time
	NewStartTime *types.TimeString
}

// Response результат изменения статуса
type Response struct {
	Booking *domain.Booking
}
