package get_available_slots

import (
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// generateDaySlots генерирует список всех возможных временных слотов на день
// Слоты идут от начала рабочего окна с фиксированным шагом durationMinutes;
// слот, чей конец выходит за end_time, не генерируется (неполный хвостовой
// слот отбрасывается).
//
// Для сегодняшней даты слоты дополнительно фильтруются по текущему времени
// и минимальному времени до бронирования (minBookingNoticeMinutes).
func generateDaySlots(
	config *domain.ServiceScheduleConfig,
	date time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	// День не входит в рабочие дни услуги - слотов нет, это не ошибка
	if !config.IsDayAvailable(date.Weekday()) {
		return []types.TimeString{}, nil
	}

	// Пустое рабочее окно (start_time == end_time) - слотов нет
	if !config.StartTime.IsBefore(config.EndTime) {
		return []types.TimeString{}, nil
	}

	startMinutes, err := config.StartTime.Minutes()
	if err != nil {
		return nil, err
	}
	endMinutes, err := config.EndTime.Minutes()
	if err != nil {
		return nil, err
	}

	// Шаг 1: генерируем все слоты, у которых конец не выходит за end_time
	allSlots := make([]types.TimeString, 0)
	for slotStart := startMinutes; slotStart+config.DurationMinutes <= endMinutes; slotStart += config.DurationMinutes {
		slot, err := types.NewTimeStringFromMinutes(slotStart)
		if err != nil {
			return nil, err
		}
		allSlots = append(allSlots, slot)
	}

	// Шаг 2: если дата не сегодня - возвращаем все слоты
	if !isSameDay(date, now) {
		return allSlots, nil
	}

	// Шаг 3: для сегодняшней даты оставляем только слоты, начинающиеся
	// не раньше чем через minBookingNoticeMinutes от текущего времени
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(config.MinBookingNoticeMinutes)
	if err != nil {
		// Минимальное время ушло за конец дня - сегодня слотов больше нет
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// calculateAvailableSpots вычисляет количество свободных мест для каждого слота
// Занятость считается по активным бронированиям услуги, чьи интервалы,
// расширенные буферами, пересекаются со слотом. Бронирования сотрудника
// (employeeBookings, могут быть из других услуг и компаний) дополнительно
// обнуляют слот: у сотрудника не может быть двух пересекающихся бронирований.
func calculateAvailableSpots(
	date time.Time,
	slots []types.TimeString,
	config *domain.ServiceScheduleConfig,
	serviceBookings []*domain.Booking,
	employeeBookings []*domain.Booking,
) ([]Slot, error) {
	result := make([]Slot, 0, len(slots))

	for _, slotStart := range slots {
		startMinutes, err := slotStart.Minutes()
		if err != nil {
			return nil, err
		}
		candidate := domain.MinuteInterval{
			Start: startMinutes,
			End:   startMinutes + config.DurationMinutes,
		}

		overlapping := domain.CountOverlapping(
			candidate,
			serviceBookings,
			config.BufferBeforeMinutes,
			config.BufferAfterMinutes,
		)

		availableSpots := config.MaxBookingsPerSlot - overlapping
		if availableSpots < 0 {
			availableSpots = 0
		}

		// Персональный конфликт сотрудника закрывает слот целиком
		if availableSpots > 0 && len(employeeBookings) > 0 {
			if domain.CountOverlapping(candidate, employeeBookings, config.BufferBeforeMinutes, config.BufferAfterMinutes) > 0 {
				availableSpots = 0
			}
		}

		result = append(result, Slot{
			Date:            date,
			StartTime:       slotStart,
			DurationMinutes: config.DurationMinutes,
			AvailableSpots:  availableSpots,
			TotalSpots:      config.MaxBookingsPerSlot,
		})
	}

	return result, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return truncateToDay(date).Before(truncateToDay(now))
}
