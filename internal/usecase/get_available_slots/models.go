package get_available_slots

import (
	"time"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	CompanyID  int64     // ID компании
	ServiceID  int64     // ID услуги
	From       time.Time // Начало диапазона (дата, включительно)
	To         time.Time // Конец диапазона (дата, НЕ включительно)
	EmployeeID *int64    // Опциональный фильтр по сотруднику
}

// Response модель ответа со списком доступных слотов
type Response struct {
	CompanyID int64  // ID компании
	ServiceID int64  // ID услуги
	From      time.Time
	To        time.Time
	Slots     []Slot // Слоты в хронологическом порядке
}

// Slot слот выдачи. Доменная модель используется напрямую: usecase не
// добавляет к ней собственных полей.
type Slot = domain.AvailableSlot
