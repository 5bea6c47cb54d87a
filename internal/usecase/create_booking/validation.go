package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	"github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата лежит в окне бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(bookingDate, now) {
		return fmt.Errorf("%w: date is in the past", ErrOutOfWindow)
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	// Последняя бронируемая дата: сегодня + advanceBookingDays (не включительно)
	maxDate := truncateToDay(now).AddDate(0, 0, advanceBookingDays)

	if !truncateToDay(bookingDate).Before(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrOutOfWindow, advanceBookingDays)
	}

	return nil
}

// validateSlotAlignment проверяет, что запрошенное время совпадает с
// границей одного из генерируемых слотов: рабочий день недели, начало не
// раньше start_time, смещение кратно длительности слота и конец слота не
// выходит за end_time. Любое нарушение - ErrOutOfWindow: такого слота
// просто не существует.
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

// validateBookingNotice проверяет, что бронирование не нарушает minBookingNoticeMinutes
func validateBookingNotice(
	bookingDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Если дата бронирования не сегодня, проверка не нужна
	if !isSameDay(bookingDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Минимальное время ушло за конец дня - сегодня бронировать поздно
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// validateEmployee проверяет выбор сотрудника против конфигурации услуги
// и ростера компании
func validateEmployee(req *Request, config *domain.ServiceScheduleConfig, company *companyservice.Company) error {
	if req.EmployeeID == nil {
		// Услуга, закреплённая за сотрудниками, требует выбора сотрудника
		if config.RequiresAssignedEmployee() {
			return ErrEmployeeRequired
		}
		return nil
	}

	if config.RequiresAssignedEmployee() && !config.IsEmployeeAssigned(*req.EmployeeID) {
		return ErrEmployeeNotAssigned
	}

	// Сотрудник должен числиться в компании
	for _, id := range company.EmployeeIDs {
		if id == *req.EmployeeID {
			return nil
		}
	}
	return ErrEmployeeNotAssigned
}

// checkSlotCapacity проверяет занятость слота по активным бронированиям
// услуги; интервалы существующих бронирований расширяются буферами
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

	// При MaxBookingsPerSlot = 4 допустимо overlapping = 0, 1, 2, 3
	if overlapping >= config.MaxBookingsPerSlot {
		return fmt.Errorf("%w: %d/%d spots taken", ErrSlotFull, overlapping, config.MaxBookingsPerSlot)
	}

	return nil
}

// checkEmployeeConflict проверяет, что у сотрудника нет пересекающегося
// (с учётом буферов) бронирования. Буфер сотрудника персональный и
// действует по всем услугам и компаниям.
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

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return truncateToDay(date).Before(truncateToDay(now))
}
