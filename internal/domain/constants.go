package domain

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours

	MinBookingsPerSlot = 1
	MaxBookingsPerSlot = 100

	MinBufferMinutes = 0
	MaxBufferMinutes = 240

	MinAdvanceBookingDays = 0
	MaxAdvanceBookingDays = 365 // 1 year

	MinNoticeMinutes = 0
	MaxNoticeMinutes = 10080 // 1 week

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses список терминальных статусов бронирований.
// Используется для фильтрации при подсчёте занятости слотов.
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

// ActiveStatuses список статусов, при которых бронирование занимает место в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusRescheduled,
}
