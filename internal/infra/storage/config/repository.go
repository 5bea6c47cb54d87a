package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	"github.com/m04kA/PSM-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/PSM-SchedulingService/pkg/psqlbuilder"
)

// pq error code for unique_violation
const uniqueViolationCode = "23505"

// configColumns полный список колонок таблицы service_schedule_config
var configColumns = []string{
	"id",
	"company_id",
	"service_id",
	"duration_minutes",
	"available_days",
	"start_time",
	"end_time",
	"max_bookings_per_slot",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"assigned_employee_ids",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, config *domain.ServiceScheduleConfig) (*domain.ServiceScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_schedule_config").
		Columns(
			"company_id",
			"service_id",
			"duration_minutes",
			"available_days",
			"start_time",
			"end_time",
			"max_bookings_per_slot",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"assigned_employee_ids",
		).
		Values(
			config.CompanyID,
			config.ServiceID,
			config.DurationMinutes,
			pq.Array(weekdaysToInts(config.AvailableDays)),
			config.StartTime,
			config.EndTime,
			config.MaxBookingsPerSlot,
			config.BufferBeforeMinutes,
			config.BufferAfterMinutes,
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
			pq.Array(config.AssignedEmployeeIDs),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err) {
		return nil, ErrDuplicateConfig
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByCompanyAndService получает конфигурацию для пары (компания, услуга)
func (r *Repository) GetByCompanyAndService(ctx context.Context, companyID, serviceID int64) (*domain.ServiceScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("service_schedule_config").
		Where(squirrel.Eq{"company_id": companyID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndService - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndService - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetAllByCompany получает все конфигурации компании
func (r *Repository) GetAllByCompany(ctx context.Context, companyID int64) ([]*domain.ServiceScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("service_schedule_config").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ServiceScheduleConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByCompany - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByCompany - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или полностью заменяет конфигурацию пары (компания, услуга)
func (r *Repository) Upsert(ctx context.Context, config *domain.ServiceScheduleConfig) (*domain.ServiceScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_schedule_config").
		Columns(
			"company_id",
			"service_id",
			"duration_minutes",
			"available_days",
			"start_time",
			"end_time",
			"max_bookings_per_slot",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
			"assigned_employee_ids",
		).
		Values(
			config.CompanyID,
			config.ServiceID,
			config.DurationMinutes,
			pq.Array(weekdaysToInts(config.AvailableDays)),
			config.StartTime,
			config.EndTime,
			config.MaxBookingsPerSlot,
			config.BufferBeforeMinutes,
			config.BufferAfterMinutes,
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
			pq.Array(config.AssignedEmployeeIDs),
		).
		Suffix(`ON CONFLICT (company_id, service_id) DO UPDATE SET
			duration_minutes = EXCLUDED.duration_minutes,
			available_days = EXCLUDED.available_days,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			max_bookings_per_slot = EXCLUDED.max_bookings_per_slot,
			buffer_before_minutes = EXCLUDED.buffer_before_minutes,
			buffer_after_minutes = EXCLUDED.buffer_after_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			assigned_employee_ids = EXCLUDED.assigned_employee_ids
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию пары (компания, услуга)
func (r *Repository) Delete(ctx context.Context, companyID, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_schedule_config").
		Where(squirrel.Eq{"company_id": companyID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// rowScanner объединяет *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfig сканирует одну строку в конфигурацию
func scanConfig(row rowScanner) (*domain.ServiceScheduleConfig, error) {
	var config domain.ServiceScheduleConfig
	var createdAt, updatedAt sql.NullTime
	var days []int64
	var employees []int64

	err := row.Scan(
		&config.ID,
		&config.CompanyID,
		&config.ServiceID,
		&config.DurationMinutes,
		pq.Array(&days),
		&config.StartTime,
		&config.EndTime,
		&config.MaxBookingsPerSlot,
		&config.BufferBeforeMinutes,
		&config.BufferAfterMinutes,
		&config.AdvanceBookingDays,
		&config.MinBookingNoticeMinutes,
		pq.Array(&employees),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.AvailableDays = intsToWeekdays(days)
	config.AssignedEmployeeIDs = employees
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// weekdaysToInts конвертирует дни недели в int64 для INTEGER[] колонки
// (0 = Sunday, по соглашению time.Weekday)
func weekdaysToInts(days []time.Weekday) []int64 {
	result := make([]int64, len(days))
	for i, d := range days {
		result[i] = int64(d)
	}
	return result
}

// intsToWeekdays обратная конвертация
func intsToWeekdays(values []int64) []time.Weekday {
	result := make([]time.Weekday, len(values))
	for i, v := range values {
		result[i] = time.Weekday(v)
	}
	return result
}

// isUniqueViolation распознает нарушение уникального ограничения Postgres
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
