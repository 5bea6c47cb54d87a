package update_booking_status

import (
	"fmt"
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	"github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if !req.TargetStatus.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.TargetStatus)
	}

	if req.TargetStatus == domain.StatusRescheduled {
		if req.NewDate == nil || req.NewDate.IsZero() {
			return fmt.Errorf("%w: newDate is required for reschedule", ErrInvalidInput)
		}
		if req.NewStartTime == nil || req.NewStartTime.IsZero() {
			return fmt.Errorf("%w: newStartTime is required for reschedule", ErrInvalidInput)
		}
		if err := req.NewStartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
		}
	} else {
		if req.NewDate != nil || req.NewStartTime != nil {
			return fmt.Errorf("%w: newDate/newStartTime are only allowed for reschedule", ErrInvalidInput)
		}
	}

	return nil
}

// validateTransition проверяет переход по машине статусов. Терминальный
// статус проверяется первым: completed/cancelled/rejected не допускают
// никаких переходов, включая повторную отмену.
func validateTransition(current, target domain.BookingStatus) error {
	if current.IsTerminal() {
		return fmt.Errorf("%w: booking is %s", ErrTerminalState, current)
	}

	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, target)
	}

	return nil
}

// validateActor проверяет права на переход: клиент может отменить или
// перенести собственное бронирование, менеджер компании - выполнить
// любой допустимый переход
func validateActor(actorID int64, booking *domain.Booking, company *companyservice.Company, target domain.BookingStatus) error {
	if isManager(actorID, company) {
		return nil
	}

	if actorID == booking.CustomerID {
		switch target {
		case domain.StatusCancelled, domain.StatusRescheduled:
			return nil
		}
	}

	return ErrAccessDenied
}

// isManager проверяет, что пользователь является менеджером компании
func isManager(userID int64, company *companyservice.Company) bool {
	for _, id := range company.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// validateDate проверяет, что дата лежит в окне бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	if truncateToDay(bookingDate).Before(truncateToDay(now)) {
		return fmt.Errorf("%w: date is in the past", ErrOutOfWindow)
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := truncateToDay(now).AddDate(0, 0, advanceBookingDays)

	if !truncateToDay(bookingDate).Before(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrOutOfWindow, advanceBookingDays)
	}

	return nil
}

// validateSlotAlignment проверяет, что новое время совпадает с границей
// одного из генерируемых слотов
func validateSlotAlignment(date time.Time, startTime types.TimeString, config *domain.ServiceScheduleConfig) error {
	if !config.IsDayAvailable(date.Weekday()) {
		return fmt.Errorf("%w: service does not work on %s", ErrOutOfWindow, date.Weekday())
	}

	if !config.IsBookable() {
		return fmt.Errorf("%w: service has no bookable hours", ErrOutOfWindow)
	}

	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	windowStart, err := config.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid config start_time: %v", ErrInternal, err)
	}

	windowEnd, err := config.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid config end_time: %v", ErrInternal, err)
	}

	if startMinutes < windowStart {
		return fmt.Errorf("%w: slot starts before working hours", ErrOutOfWindow)
	}

	if (startMinutes-windowStart)%config.DurationMinutes != 0 {
		return fmt.Errorf("%w: slot is not aligned to the schedule grid", ErrOutOfWindow)
	}

	if startMinutes+config.DurationMinutes > windowEnd {
		return fmt.Errorf("%w: slot ends after working hours", ErrOutOfWindow)
	}

	return nil
}

// validateBookingNotice проверяет minBookingNoticeMinutes для нового времени
func validateBookingNotice(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// checkSlotCapacity проверяет занятость слота по активным бронированиям
// услуги; само переносимое бронирование исключается через skipIDs
func checkSlotCapacity(
	startTime types.TimeString,
	config *domain.ServiceScheduleConfig,
	bookings []*domain.Booking,
	skipIDs ...int64,
) error {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInternal, err)
	}

	candidate := domain.MinuteInterval{
		Start: startMinutes,
		End:   startMinutes + config.DurationMinutes,
	}

	overlapping := domain.CountOverlapping(
		candidate,
		bookings,
		config.BufferBeforeMinutes,
		config.BufferAfterMinutes,
		skipIDs...,
	)

	if overlapping >= config.MaxBookingsPerSlot {
		return fmt.Errorf("%w: %d/%d spots taken", ErrSlotFull, overlapping, config.MaxBookingsPerSlot)
	}

	return nil
}

// checkEmployeeConflict проверяет персональный конфликт сотрудника на
// новое время, исключая само переносимое бронирование
func checkEmployeeConflict(
	startTime types.TimeString,
	config *domain.ServiceScheduleConfig,
	employeeBookings []*domain.Booking,
	skipIDs ...int64,
) error {
	startMinutes, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInternal, err)
	}

	candidate := domain.MinuteInterval{
		Start: startMinutes,
		End:   startMinutes + config.DurationMinutes,
	}

	overlapping := domain.CountOverlapping(
		candidate,
		employeeBookings,
		config.BufferBeforeMinutes,
		config.BufferAfterMinutes,
		skipIDs...,
	)

	if overlapping > 0 {
		return ErrEmployeeConflict
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
