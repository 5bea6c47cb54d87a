package update_booking_status

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTerminalState бронирование находится в терминальном статусе
	ErrTerminalState = errors.New("booking is in terminal state")

	// ErrIllegalTransition переход между статусами запрещён
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrAccessDenied нет прав на изменение статуса
	ErrAccessDenied = errors.New("access denied")

	// ErrCompanyNotFound компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrScheduleNotConfigured расписание для услуги не настроено
	ErrScheduleNotConfigured = errors.New("schedule is not configured for service")

	// ErrOutOfWindow новое время вне рабочего окна или сетки слотов
	ErrOutOfWindow = errors.New("requested time is outside the schedule window")

	// ErrSlotFull слот на новое время заполнен
	ErrSlotFull = errors.New("slot is fully booked")

	// ErrEmployeeConflict у сотрудника пересечение на новое время
	ErrEmployeeConflict = errors.New("employee has a conflicting booking")

	// ErrTooLateToBook новое время не удовлетворяет минимальному уведомлению
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
