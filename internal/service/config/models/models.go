package models

import (
	"errors"
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format")

	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")
)

// Request модели

// UpsertConfigRequest запрос на создание или полную замену конфигурации
// расписания услуги
type UpsertConfigRequest struct {
	UserID    int64 `json:"userId"`
	CompanyID int64 `json:"companyId"`
	ServiceID int64 `json:"serviceId"`

	DurationMinutes int    `json:"durationMinutes"`
	AvailableDays   []int  `json:"availableDays"` // 0 = Sunday ... 6 = Saturday
	StartTime       string `json:"startTime"`     // "09:00"
	EndTime         string `json:"endTime"`       // "18:00"

	MaxBookingsPerSlot  int `json:"maxBookingsPerSlot"`
	BufferBeforeMinutes int `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int `json:"bufferAfterMinutes"`

	AdvanceBookingDays      int `json:"advanceBookingDays"` // 0 = без ограничения
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`

	AssignedEmployeeIDs []int64 `json:"assignedEmployeeIds,omitempty"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpsertConfigRequest) ToDomainConfig() (*domain.ServiceScheduleConfig, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	days := make([]time.Weekday, 0, len(r.AvailableDays))
	for _, d := range r.AvailableDays {
		if d < 0 || d > 6 {
			return nil, ErrInvalidWeekday
		}
		days = append(days, time.Weekday(d))
	}

	return &domain.ServiceScheduleConfig{
		CompanyID:               r.CompanyID,
		ServiceID:               r.ServiceID,
		DurationMinutes:         r.DurationMinutes,
		AvailableDays:           days,
		StartTime:               startTime,
		EndTime:                 endTime,
		MaxBookingsPerSlot:      r.MaxBookingsPerSlot,
		BufferBeforeMinutes:     r.BufferBeforeMinutes,
		BufferAfterMinutes:      r.BufferAfterMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AssignedEmployeeIDs:     r.AssignedEmployeeIDs,
	}, nil
}

// Response модели

// ConfigResponse ответ с данными конфигурации расписания
type ConfigResponse struct {
	ID        int64 `json:"id"`
	CompanyID int64 `json:"companyId"`
	ServiceID int64 `json:"serviceId"`

	DurationMinutes int    `json:"durationMinutes"`
	AvailableDays   []int  `json:"availableDays"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`

	MaxBookingsPerSlot  int `json:"maxBookingsPerSlot"`
	BufferBeforeMinutes int `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int `json:"bufferAfterMinutes"`

	AdvanceBookingDays      int `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`

	AssignedEmployeeIDs []int64 `json:"assignedEmployeeIds"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConfigListResponse ответ со списком конфигураций
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ServiceScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	days := make([]int, len(c.AvailableDays))
	for i, d := range c.AvailableDays {
		days[i] = int(d)
	}

	employees := c.AssignedEmployeeIDs
	if employees == nil {
		employees = []int64{}
	}

	return &ConfigResponse{
		ID:                      c.ID,
		CompanyID:               c.CompanyID,
		ServiceID:               c.ServiceID,
		DurationMinutes:         c.DurationMinutes,
		AvailableDays:           days,
		StartTime:               c.StartTime.String(),
		EndTime:                 c.EndTime.String(),
		MaxBookingsPerSlot:      c.MaxBookingsPerSlot,
		BufferBeforeMinutes:     c.BufferBeforeMinutes,
		BufferAfterMinutes:      c.BufferAfterMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		AssignedEmployeeIDs:     employees,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.ServiceScheduleConfig) *ConfigListResponse {
	if configs == nil {
		return &ConfigListResponse{
			Configs: []ConfigResponse{},
		}
	}

	resp := &ConfigListResponse{
		Configs: make([]ConfigResponse, len(configs)),
	}

	for i, config := range configs {
		if configResp := FromDomainConfig(config); configResp != nil {
			resp.Configs[i] = *configResp
		}
	}

	return resp
}
