package get_company_schedule_configs

import (
	"context"

	"github.com/m04kA/PSM-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	GetAllByCompany(ctx context.Context, companyID int64, userID int64) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
