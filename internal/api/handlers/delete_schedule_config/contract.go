package delete_schedule_config

import "context"

type ConfigService interface {
	Delete(ctx context.Context, companyID, serviceID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
