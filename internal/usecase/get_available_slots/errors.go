package get_available_slots

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("get_available_slots: company not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrScheduleNotConfigured возвращается, когда для услуги не настроено расписание
	ErrScheduleNotConfigured = errors.New("get_available_slots: schedule is not configured for this service")

	// ErrOutOfWindow возвращается, когда запрошенный диапазон дат выходит за
	// пределы окна бронирования (в прошлом или дальше advanceBookingDays)
	ErrOutOfWindow = errors.New("get_available_slots: requested range is outside the booking window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
