package cancel_booking

import "github.com/m04kA/PSM-SchedulingService/internal/domain"

// Request запрос на отмену бронирования
type Request struct {
	BookingID int64
	ActorID   int64
	Reason    *string
}

// Response результат отмены
type Response struct {
	Booking *domain.Booking
}
