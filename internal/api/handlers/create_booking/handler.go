package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/PSM-SchedulingService/internal/api/handlers"
	"github.com/m04kA/PSM-SchedulingService/internal/api/middleware"
	createBooking "github.com/m04kA/PSM-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgCompanyNotFound     = "компания не найдена"
	msgServiceNotFound     = "услуга не найдена"
	msgNoSchedule          = "расписание для услуги не настроено"
	msgOutOfWindow         = "запрошенный слот вне окна бронирования"
	msgSlotFull            = "все места в слоте заняты"
	msgEmployeeConflict    = "у сотрудника уже есть бронирование на это время"
	msgEmployeeRequired    = "для этой услуги необходимо выбрать сотрудника"
	msgEmployeeNotAssigned = "сотрудник не закреплён за этой услугой"
	msgTooLateToBook       = "слишком поздно для бронирования этого слота"
	msgInvalidParams       = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем ID клиента из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCompanyNotFound):
			h.logger.Warn("POST /bookings - Company not found: company_id=%d", req.CompanyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: company_id=%d, service_id=%d", req.CompanyID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrScheduleNotConfigured):
			h.logger.Warn("POST /bookings - Schedule not configured: company_id=%d, service_id=%d", req.CompanyID, req.ServiceID)
			handlers.RespondNotFound(w, msgNoSchedule)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: customer_id=%d, company_id=%d", customerID, req.CompanyID)
			handlers.RespondError(w, http.StatusConflict, msgSlotFull)

		case errors.Is(err, createBooking.ErrEmployeeConflict):
			h.logger.Warn("POST /bookings - Employee conflict: customer_id=%d, employee_id=%v", customerID, req.EmployeeID)
			handlers.RespondError(w, http.StatusConflict, msgEmployeeConflict)

		case errors.Is(err, createBooking.ErrEmployeeRequired):
			h.logger.Warn("POST /bookings - Employee required: company_id=%d, service_id=%d", req.CompanyID, req.ServiceID)
			handlers.RespondBadRequest(w, msgEmployeeRequired)

		case errors.Is(err, createBooking.ErrEmployeeNotAssigned):
			h.logger.Warn("POST /bookings - Employee not assigned: employee_id=%v, service_id=%d", req.EmployeeID, req.ServiceID)
			handlers.RespondBadRequest(w, msgEmployeeNotAssigned)

		case errors.Is(err, createBooking.ErrOutOfWindow):
			h.logger.Warn("POST /bookings - Slot out of window: customer_id=%d, company_id=%d", customerID, req.CompanyID)
			handlers.RespondBadRequest(w, msgOutOfWindow)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: customer_id=%d, company_id=%d", customerID, req.CompanyID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, company_id=%d, error=%v",
				customerID, req.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, company_id=%d",
		result.ID, customerID, req.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
