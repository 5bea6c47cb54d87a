package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/config"
	companyClient "github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
)

// UseCase use case для изменения статуса бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	configRepo    ConfigRepository
	companyClient CompanyServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	companyClient CompanyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		configRepo:    configRepo,
		companyClient: companyClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет переход бронирования в новый статус.
// Чтение бронирования, проверка машины статусов и обновление выполняются
// в одной сериализуемой транзакции с блокировкой строки (FOR UPDATE):
// два конкурирующих перехода не могут оба пройти проверку. Перенос
// (rescheduled) дополнительно перепроверяет новый слот, исключая само
// бронирование из подсчёта конфликтов, и обновляет статус, дату и время
// одним UPDATE - при любой ошибке строка остаётся нетронутой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, actor=%d, target=%s",
		req.BookingID, req.ActorID, req.TargetStatus)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 2. Выполняем переход в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2.2. Проверка прав: клиент или менеджер компании
		company, err := uc.companyClient.GetCompany(txCtx, booking.CompanyID)
		if err != nil {
			if errors.Is(err, companyClient.ErrCompanyNotFound) {
				uc.logger.Warn("UpdateBookingStatus: company id=%d not found", booking.CompanyID)
				return ErrCompanyNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get company id=%d: %v", booking.CompanyID, err)
			return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
		}

		if err := validateActor(req.ActorID, booking, company, req.TargetStatus); err != nil {
			uc.logger.Warn("UpdateBookingStatus: access denied for user=%d, booking=%d",
				req.ActorID, req.BookingID)
			return err
		}

		// 2.3. Проверка машины статусов (терминальность - первой)
		if err := validateTransition(booking.Status, req.TargetStatus); err != nil {
			uc.logger.Warn("UpdateBookingStatus: transition rejected: %v", err)
			return err
		}

		// 2.4. Перенос: перепроверяем новый слот и обновляем атомарно
		if req.TargetStatus == domain.StatusRescheduled {
			if err := uc.validateNewSlot(txCtx, booking, req, now); err != nil {
				return err
			}

			if err := uc.bookingRepo.Reschedule(txCtx, booking.ID, domain.StatusRescheduled, *req.NewDate, *req.NewStartTime); err != nil {
				uc.logger.Error("UpdateBookingStatus: failed to reschedule booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
			}

			booking.Status = domain.StatusRescheduled
			booking.BookingDate = *req.NewDate
			booking.StartTime = *req.NewStartTime
			result = booking
			return nil
		}

		// 2.5. Обычный переход статуса
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, req.TargetStatus); err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to update status for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		booking.Status = req.TargetStatus
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved to %s", result.ID, result.Status)

	return &Response{Booking: result}, nil
}

// validateNewSlot перепроверяет валидность нового слота переноса так же,
// как при создании бронирования, но исключая переносимое бронирование
// из подсчёта конфликтов
func (uc *UseCase) validateNewSlot(ctx context.Context, booking *domain.Booking, req *Request, now time.Time) error {
	config, err := uc.configRepo.GetByCompanyAndService(ctx, booking.CompanyID, booking.ServiceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("UpdateBookingStatus: schedule not configured for company=%d, service=%d",
				booking.CompanyID, booking.ServiceID)
			return ErrScheduleNotConfigured
		}
		uc.logger.Error("UpdateBookingStatus: failed to get config: %v", err)
		return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if err := validateDate(*req.NewDate, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("UpdateBookingStatus: date validation failed: %v", err)
		return err
	}

	if err := validateSlotAlignment(*req.NewDate, *req.NewStartTime, config); err != nil {
		uc.logger.Warn("UpdateBookingStatus: slot alignment failed: %v", err)
		return err
	}

	if err := validateBookingNotice(*req.NewDate, *req.NewStartTime, now, config.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("UpdateBookingStatus: booking notice validation failed: %v", err)
		return err
	}

	// Активные бронирования услуги на новую дату с блокировкой (FOR UPDATE)
	filter := domain.CompanyBookingsFilter{
		CompanyID:       booking.CompanyID,
		ServiceID:       &booking.ServiceID,
		StartDate:       req.NewDate,
		EndDate:         req.NewDate,
		IncludeInactive: false,
	}

	serviceBookings, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("UpdateBookingStatus: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	if err := checkSlotCapacity(*req.NewStartTime, config, serviceBookings, booking.ID); err != nil {
		uc.logger.Warn("UpdateBookingStatus: slot capacity check failed: %v", err)
		return err
	}

	if booking.EmployeeID != nil {
		employeeBookings, err := uc.bookingRepo.GetByEmployeeAndDate(ctx, *booking.EmployeeID, *req.NewDate)
		if err != nil {
			uc.logger.Error("UpdateBookingStatus: failed to get employee bookings: %v", err)
			return fmt.Errorf("%w: failed to get employee bookings: %v", ErrInternal, err)
		}

		if err := checkEmployeeConflict(*req.NewStartTime, config, employeeBookings, booking.ID); err != nil {
			uc.logger.Warn("UpdateBookingStatus: employee conflict for employee=%d", *booking.EmployeeID)
			return err
		}
	}

	return nil
}
