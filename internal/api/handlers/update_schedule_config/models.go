package update_schedule_config

import (
	"github.com/m04kA/PSM-SchedulingService/internal/service/config/models"
)

// UpdateScheduleConfigRequest HTTP request model
// PUT семантика: конфигурация заменяется целиком
type UpdateScheduleConfigRequest struct {
	DurationMinutes int    `json:"durationMinutes"`
	AvailableDays   []int  `json:"availableDays"` // 0 = воскресенье ... 6 = суббота
	StartTime       string `json:"startTime"`     // "09:00"
	EndTime         string `json:"endTime"`       // "18:00"

	MaxBookingsPerSlot  int `json:"maxBookingsPerSlot"`
	BufferBeforeMinutes int `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int `json:"bufferAfterMinutes"`

	AdvanceBookingDays      int `json:"advanceBookingDays"` // 0 = без ограничения
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes"`

	AssignedEmployeeIDs []int64 `json:"assignedEmployeeIds,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleConfigRequest) ToServiceRequest(companyID, serviceID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                  userID,
		CompanyID:               companyID,
		ServiceID:               serviceID,
		DurationMinutes:         r.DurationMinutes,
		AvailableDays:           r.AvailableDays,
		StartTime:               r.StartTime,
		EndTime:                 r.EndTime,
		MaxBookingsPerSlot:      r.MaxBookingsPerSlot,
		BufferBeforeMinutes:     r.BufferBeforeMinutes,
		BufferAfterMinutes:      r.BufferAfterMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
		AssignedEmployeeIDs:     r.AssignedEmployeeIDs,
	}
}
