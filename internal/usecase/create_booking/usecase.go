package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/config"
	companyClient "github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка конфликтов и вставка выполняются в одной сериализуемой
// транзакции с блокировкой строк конкурирующих бронирований: два
// одновременных запроса на один слот не могут оба пройти проверку
// (classic check-then-act race).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, company=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.CompanyID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем компанию
	company, err := uc.companyClient.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("CreateBooking: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("CreateBooking: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	// 4. Получаем услугу (денормализуем название и цену в бронирование)
	service, err := uc.companyClient.GetService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, companyClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию расписания услуги
		config, err := uc.configRepo.GetByCompanyAndService(txCtx, req.CompanyID, req.ServiceID)
		if err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				uc.logger.Warn("CreateBooking: schedule not configured for company=%d, service=%d",
					req.CompanyID, req.ServiceID)
				return ErrScheduleNotConfigured
			}
			uc.logger.Error("CreateBooking: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// 5.2. Валидация даты относительно окна бронирования
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Время должно совпадать с границей генерируемого слота
		if err := validateSlotAlignment(req.Date, req.StartTime, config); err != nil {
			uc.logger.Warn("CreateBooking: slot alignment failed: %v", err)
			return err
		}

		// 5.4. Проверка minBookingNoticeMinutes
		if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking notice validation failed: %v", err)
			return err
		}

		// 5.5. Проверка выбора сотрудника
		if err := validateEmployee(req, config, company); err != nil {
			uc.logger.Warn("CreateBooking: employee validation failed: %v", err)
			return err
		}

		// 5.6. Получаем активные бронирования услуги на дату с блокировкой (FOR UPDATE)
		filter := domain.CompanyBookingsFilter{
			CompanyID:       req.CompanyID,
			ServiceID:       &req.ServiceID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		serviceBookings, err := uc.bookingRepo.GetByCompanyWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.7. Проверяем вместимость слота
		if err := checkSlotCapacity(req.StartTime, config, serviceBookings); err != nil {
			uc.logger.Warn("CreateBooking: slot capacity check failed: %v", err)
			return err
		}

		// 5.8. Проверяем персональный конфликт сотрудника
		if req.EmployeeID != nil {
			employeeBookings, err := uc.bookingRepo.GetByEmployeeAndDate(txCtx, *req.EmployeeID, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get employee bookings: %v", err)
				return fmt.Errorf("%w: failed to get employee bookings: %v", ErrInternal, err)
			}

			if err := checkEmployeeConflict(req.StartTime, config, employeeBookings); err != nil {
				uc.logger.Warn("CreateBooking: employee conflict for employee=%d", *req.EmployeeID)
				return err
			}
		}

		// 5.9. Создаем бронирование в начальном статусе pending
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			CompanyID:       req.CompanyID,
			ServiceID:       req.ServiceID,
			EmployeeID:      req.EmployeeID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: config.DurationMinutes,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    servicePrice(service),
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		CompanyID:       result.CompanyID,
		ServiceID:       result.ServiceID,
		EmployeeID:      result.EmployeeID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// servicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func servicePrice(service *companyClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
