package create_booking

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrScheduleNotConfigured возвращается, когда для услуги не настроено расписание
	ErrScheduleNotConfigured = errors.New("create_booking: schedule is not configured for this service")

	// ErrOutOfWindow возвращается, когда запрошенный слот выходит за окно
	// бронирования: дата в прошлом, дальше advanceBookingDays, день не
	// рабочий или время не совпадает с границей сгенерированного слота
	ErrOutOfWindow = errors.New("create_booking: requested slot is outside the booking window")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot capacity is exhausted")

	// ErrEmployeeConflict возвращается, когда у сотрудника уже есть
	// пересекающееся (с учётом буферов) бронирование
	ErrEmployeeConflict = errors.New("create_booking: employee has an overlapping booking")

	// ErrEmployeeRequired возвращается, когда услуга закреплена за
	// сотрудниками, но сотрудник в запросе не указан
	ErrEmployeeRequired = errors.New("create_booking: employee is required for this service")

	// ErrEmployeeNotAssigned возвращается, когда указанный сотрудник
	// не закреплён за услугой
	ErrEmployeeNotAssigned = errors.New("create_booking: employee is not assigned to this service")

	// ErrTooLateToBook возвращается, когда бронирование нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
