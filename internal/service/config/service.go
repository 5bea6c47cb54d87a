package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/config"
	companyClient "github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
	"github.com/m04kA/PSM-SchedulingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания услуг
type Service struct {
	configRepo    ConfigRepository
	companyClient CompanyServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	companyClient CompanyServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:    configRepo,
		companyClient: companyClient,
		logger:        logger,
	}
}

// Get получает конфигурацию расписания услуги
// Публичный метод - клиенты видят расписание до бронирования
func (s *Service) Get(ctx context.Context, companyID, serviceID int64) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for company=%d, service=%d", companyID, serviceID)

	config, err := s.configRepo.GetByCompanyAndService(ctx, companyID, serviceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: config not found for company=%d, service=%d", companyID, serviceID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error for company=%d, service=%d: %v", companyID, serviceID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// GetAllByCompany получает все конфигурации компании
// Доступно только менеджерам компании
func (s *Service) GetAllByCompany(ctx context.Context, companyID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByCompany: fetching configs for company=%d by user=%d", companyID, userID)

	if _, err := s.checkManagerAccess(ctx, companyID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("GetAllByCompany: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetAllByCompany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByCompany: successfully fetched %d configs for company=%d", len(configs), companyID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или полностью заменяет конфигурацию расписания услуги
// Доступно только менеджерам компании
// Проверяет существование услуги и принадлежность назначенных сотрудников компании
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: config for company=%d, service=%d by user=%d",
		req.CompanyID, req.ServiceID, req.UserID)

	// 1. Конвертируем в domain модель (валидирует формат времени и дней)
	domainConfig, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("Upsert: conversion failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Валидируем границы значений
	if err := s.validateConfigData(domainConfig); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем права доступа менеджера
	company, err := s.checkManagerAccess(ctx, req.CompanyID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 4. Услуга должна существовать в компании
	if _, err := s.companyClient.GetService(ctx, req.CompanyID, req.ServiceID); err != nil {
		if errors.Is(err, companyClient.ErrServiceNotFound) {
			s.logger.Warn("Upsert: service id=%d not found in company=%d", req.ServiceID, req.CompanyID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Upsert: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Назначенные сотрудники должны числиться в компании
	for _, employeeID := range domainConfig.AssignedEmployeeIDs {
		if !s.employeeInCompany(company.EmployeeIDs, employeeID) {
			s.logger.Warn("Upsert: employee id=%d is not part of company=%d", employeeID, req.CompanyID)
			return nil, ErrEmployeeNotInCompany
		}
	}

	// 6. Сохраняем конфигурацию
	saved, err := s.configRepo.Upsert(ctx, domainConfig)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// Delete удаляет конфигурацию расписания услуги
// Доступно только менеджерам компании
func (s *Service) Delete(ctx context.Context, companyID, serviceID int64, userID int64) error {
	s.logger.Info("Delete: config for company=%d, service=%d by user=%d", companyID, serviceID, userID)

	if _, err := s.checkManagerAccess(ctx, companyID, userID); err != nil {
		return err
	}

	if err := s.configRepo.Delete(ctx, companyID, serviceID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config not found for company=%d, service=%d", companyID, serviceID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for company=%d, service=%d: %v", companyID, serviceID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config for company=%d, service=%d", companyID, serviceID)
	return nil
}

// Вспомогательные методы

// validateConfigData проверяет границы значений конфигурации
func (s *Service) validateConfigData(c *domain.ServiceScheduleConfig) error {
	if c.DurationMinutes < domain.MinDurationMinutes || c.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if len(c.AvailableDays) == 0 {
		return fmt.Errorf("%w: availableDays must not be empty", ErrInvalidInput)
	}

	if !c.StartTime.IsBefore(c.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if c.MaxBookingsPerSlot < domain.MinBookingsPerSlot || c.MaxBookingsPerSlot > domain.MaxBookingsPerSlot {
		return fmt.Errorf("%w: maxBookingsPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinBookingsPerSlot, domain.MaxBookingsPerSlot)
	}

	if c.BufferBeforeMinutes < domain.MinBufferMinutes || c.BufferBeforeMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferBeforeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if c.BufferAfterMinutes < domain.MinBufferMinutes || c.BufferAfterMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferAfterMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if c.AdvanceBookingDays < domain.MinAdvanceBookingDays || c.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if c.MinBookingNoticeMinutes < domain.MinNoticeMinutes || c.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}

	return nil
}

// employeeInCompany проверяет, что сотрудник числится в ростере компании
func (s *Service) employeeInCompany(roster []int64, employeeID int64) bool {
	for _, id := range roster {
		if id == employeeID {
			return true
		}
	}
	return false
}

// checkManagerAccess проверяет, что пользователь является менеджером компании
func (s *Service) checkManagerAccess(ctx context.Context, companyID int64, userID int64) (*companyClient.Company, error) {
	company, err := s.companyClient.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyClient.ErrCompanyNotFound) {
			s.logger.Warn("checkManagerAccess: company id=%d not found", companyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get company id=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: checkManagerAccess - failed to get company: %v", ErrInternal, err)
	}

	for _, managerID := range company.ManagerIDs {
		if managerID == userID {
			return company, nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of company=%d", userID, companyID)
	return nil, ErrAccessDenied
}
