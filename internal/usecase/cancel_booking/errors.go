package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrTerminalState возвращается, когда бронирование уже в терминальном
	// статусе (включая повторную отмену)
	ErrTerminalState = errors.New("cancel_booking: booking is in terminal state")

	// ErrIllegalTransition возвращается, когда отмена из текущего статуса запрещена
	ErrIllegalTransition = errors.New("cancel_booking: illegal status transition")

	// ErrAccessDenied возвращается, когда нет прав на отмену бронирования
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("cancel_booking: company not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
