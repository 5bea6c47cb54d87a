package config

import (
	"context"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	"github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	GetByCompanyAndService(ctx context.Context, companyID, serviceID int64) (*domain.ServiceScheduleConfig, error)
	GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.ServiceScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.ServiceScheduleConfig) (*domain.ServiceScheduleConfig, error)
	Delete(ctx context.Context, companyID, serviceID int64) error
}

// CompanyServiceClient интерфейс клиента для CompanyService
type CompanyServiceClient interface {
	GetCompany(ctx context.Context, companyID int64) (*companyservice.Company, error)
	GetService(ctx context.Context, companyID, serviceID int64) (*companyservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
