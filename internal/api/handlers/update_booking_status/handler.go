package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PSM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PSM-SchedulingService/internal/api/middleware"
	updateBookingStatus "github.com/m04kA/PSM-SchedulingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgTerminalState      = "бронирование находится в конечном статусе"
	msgIllegalTransition  = "недопустимый переход статуса"
	msgCompanyNotFound    = "компания не найдена"
	msgNoSchedule         = "расписание для услуги не настроено"
	msgOutOfWindow        = "новое время вне окна бронирования"
	msgSlotFull           = "все места в слоте на новое время заняты"
	msgEmployeeConflict   = "у сотрудника уже есть бронирование на новое время"
	msgTooLateToBook      = "слишком поздно для переноса на этот слот"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase UpdateBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем ID пользователя из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(bookingID, actorID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBookingStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBookingStatus.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, user_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBookingStatus.ErrTerminalState):
			h.logger.Warn("PATCH /bookings/{id}/status - Terminal state: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTerminalState)

		case errors.Is(err, updateBookingStatus.ErrIllegalTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Illegal transition: booking_id=%d, target=%s", bookingID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgIllegalTransition)

		case errors.Is(err, updateBookingStatus.ErrCompanyNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Company not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, updateBookingStatus.ErrScheduleNotConfigured):
			h.logger.Warn("PATCH /bookings/{id}/status - Schedule not configured: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNoSchedule)

		case errors.Is(err, updateBookingStatus.ErrSlotFull):
			h.logger.Warn("PATCH /bookings/{id}/status - Slot full: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, updateBookingStatus.ErrEmployeeConflict):
			h.logger.Warn("PATCH /bookings/{id}/status - Employee conflict: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgEmployeeConflict)

		case errors.Is(err, updateBookingStatus.ErrOutOfWindow):
			h.logger.Warn("PATCH /bookings/{id}/status - New slot out of window: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		case errors.Is(err, updateBookingStatus.ErrTooLateToBook):
			h.logger.Warn("PATCH /bookings/{id}/status - Too late to reschedule: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, updateBookingStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated successfully: booking_id=%d, status=%s, user_id=%d",
		bookingID, result.Booking.Status, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainBooking(result.Booking))
}
