package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/config"
	companyClient "github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	configRepo    ConfigRepository
	companyClient CompanyServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	configRepo ConfigRepository,
	companyClient CompanyServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		configRepo:    configRepo,
		companyClient: companyClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Чистое чтение: слоты генерируются из конфигурации расписания и
// фильтруются по текущим активным бронированиям, состояние не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: company=%d, service=%d, from=%s, to=%s",
		req.CompanyID, req.ServiceID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование компании и услуги
	if _, err := uc.companyClient.GetCompany(ctx, req.CompanyID); err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			uc.logger.Warn("GetAvailableSlots: company id=%d not found", req.CompanyID)
			return nil, ErrCompanyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if _, err := uc.companyClient.GetService(ctx, req.CompanyID, req.ServiceID); err != nil {
		if errors.Is(err, companyClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем конфигурацию расписания услуги
	// Без конфигурации услуга не бронируется
	config, err := uc.configRepo.GetByCompanyAndService(ctx, req.CompanyID, req.ServiceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule not configured for company=%d, service=%d",
				req.CompanyID, req.ServiceID)
			return nil, ErrScheduleNotConfigured
		}
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 5. Валидация диапазона дат относительно окна бронирования
	if err := validateRange(req.From, req.To, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: range validation failed: %v", err)
		return nil, err
	}

	// 6. Генерируем слоты по дням и накладываем занятость
	slots := make([]Slot, 0)

	for date := truncateToDay(req.From); date.Before(truncateToDay(req.To)); date = date.AddDate(0, 0, 1) {
		daySlots, err := uc.collectDaySlots(ctx, req, config, date, now)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for company=%d, service=%d",
		len(slots), req.CompanyID, req.ServiceID)

	return &Response{
		CompanyID: req.CompanyID,
		ServiceID: req.ServiceID,
		From:      req.From,
		To:        req.To,
		Slots:     slots,
	}, nil
}

// collectDaySlots генерирует слоты одного дня и вычисляет их занятость
func (uc *UseCase) collectDaySlots(
	ctx context.Context,
	req *Request,
	config *domain.ServiceScheduleConfig,
	date time.Time,
	now time.Time,
) ([]Slot, error) {
	timeSlots, err := generateDaySlots(config, date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	if len(timeSlots) == 0 {
		return nil, nil
	}

	// Активные бронирования услуги на эту дату
	filter := domain.CompanyBookingsFilter{
		CompanyID:       req.CompanyID,
		ServiceID:       &req.ServiceID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	serviceBookings, err := uc.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// Персональные бронирования сотрудника (по всем услугам и компаниям)
	var employeeBookings []*domain.Booking
	if req.EmployeeID != nil {
		employeeBookings, err = uc.bookingRepo.GetByEmployeeAndDate(ctx, *req.EmployeeID, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get employee bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get employee bookings: %v", ErrInternal, err)
		}
	}

	return calculateAvailableSpots(date, timeSlots, config, serviceBookings, employeeBookings)
}
