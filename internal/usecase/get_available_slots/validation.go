package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateRange проверяет, что диапазон дат лежит в окне бронирования:
// from не раньше сегодняшнего дня, to не дальше advanceBookingDays от
// текущей даты. Нарушение - ошибка, а не молчаливое усечение диапазона.
func validateRange(from, to time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(from, now) {
		return fmt.Errorf("%w: range starts in the past", ErrOutOfWindow)
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	// Последняя бронируемая дата: сегодня + advanceBookingDays (не включительно).
	// to само не включается в диапазон, поэтому сравниваем последнюю
	// запрошенную дату (to - 1 день) с границей окна.
	maxDate := truncateToDay(now).AddDate(0, 0, advanceBookingDays)
	lastRequested := truncateToDay(to).AddDate(0, 0, -1)

	if !lastRequested.Before(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrOutOfWindow, advanceBookingDays)
	}

	return nil
}
