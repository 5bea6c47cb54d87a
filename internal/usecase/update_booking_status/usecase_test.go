package update_booking_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// --- fakes ---

type fakeBookingRepo struct {
	booking          *domain.Booking
	serviceBookings  []*domain.Booking
	employeeBookings []*domain.Booking

	updatedStatus *domain.BookingStatus
	rescheduled   bool
	newDate       time.Time
	newStartTime  types.TimeString
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, _ domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	return f.serviceBookings, nil
}

func (f *fakeBookingRepo) GetByEmployeeAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.employeeBookings, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, _ int64, _ domain.BookingStatus, newDate time.Time, newStartTime types.TimeString) error {
	f.rescheduled = true
	f.newDate = newDate
	f.newStartTime = newStartTime
	return nil
}

type fakeConfigRepo struct {
	config *domain.ServiceScheduleConfig
	err    error
}

func (f *fakeConfigRepo) GetByCompanyAndService(_ context.Context, _, _ int64) (*domain.ServiceScheduleConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

type fakeCompanyClient struct {
	company *companyservice.Company
	err     error
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, _ int64) (*companyservice.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.company, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- helpers ---

const (
	customerID = int64(7)
	managerID  = int64(500)
	strangerID = int64(999)
)

// Вторник 08.09.2026
var now = time.Date(2026, time.September, 8, 12, 0, 0, 0, time.UTC)

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              1,
		CustomerID:      customerID,
		CompanyID:       1,
		ServiceID:       10,
		BookingDate:     time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          status,
	}
}

func testConfig() *domain.ServiceScheduleConfig {
	return &domain.ServiceScheduleConfig{
		ID:                 1,
		CompanyID:          1,
		ServiceID:          10,
		DurationMinutes:    60,
		AvailableDays:      []time.Weekday{time.Monday, time.Wednesday},
		StartTime:          "09:00",
		EndTime:            "12:00",
		MaxBookingsPerSlot: 1,
		AdvanceBookingDays: 30,
	}
}

func testCompany() *companyservice.Company {
	return &companyservice.Company{
		ID:          1,
		ManagerIDs:  []int64{managerID},
		EmployeeIDs: []int64{42},
	}
}

func newTestUseCase(bookings *fakeBookingRepo) *UseCase {
	uc := NewUseCase(
		bookings,
		&fakeConfigRepo{config: testConfig()},
		&fakeCompanyClient{company: testCompany()},
		fakeTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func rescheduleRequest(actorID int64, day int, startTime types.TimeString) *Request {
	date := time.Date(2026, time.September, day, 0, 0, 0, 0, time.UTC)
	return &Request{
		BookingID:    1,
		ActorID:      actorID,
		TargetStatus: domain.StatusRescheduled,
		NewDate:      &date,
		NewStartTime: &startTime,
	}
}

// --- tests ---

func TestExecute_ManagerConfirmsPending(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		ActorID:      managerID,
		TargetStatus: domain.StatusConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	require.NotNil(t, bookings.updatedStatus)
	assert.Equal(t, domain.StatusConfirmed, *bookings.updatedStatus)
	assert.False(t, bookings.rescheduled)
}

func TestExecute_OwnerMayOnlyCancelOrReschedule(t *testing.T) {
	// Клиент не может подтвердить собственное бронирование
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		ActorID:      customerID,
		TargetStatus: domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Но может отменить
	bookings = &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc = newTestUseCase(bookings)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		ActorID:      customerID,
		TargetStatus: domain.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
}

func TestExecute_StrangerDenied(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		ActorID:      strangerID,
		TargetStatus: domain.StatusCancelled,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, bookings.updatedStatus)
}

func TestExecute_TerminalStateBeatsIllegalTransition(t *testing.T) {
	// Для терминального бронирования возвращается именно ErrTerminalState,
	// даже если переход и так не существует в таблице
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusRejected,
	} {
		bookings := &fakeBookingRepo{booking: testBooking(status)}
		uc := newTestUseCase(bookings)

		_, err := uc.Execute(context.Background(), &Request{
			BookingID:    1,
			ActorID:      managerID,
			TargetStatus: domain.StatusConfirmed,
		})

		assert.ErrorIs(t, err, ErrTerminalState, "status %s", status)
		assert.NotErrorIs(t, err, ErrIllegalTransition)
	}
}

func TestExecute_IllegalTransition(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(bookings)

	// pending -> completed не существует
	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		ActorID:      managerID,
		TargetStatus: domain.StatusCompleted,
	})

	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Nil(t, bookings.updatedStatus)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		ActorID:      managerID,
		TargetStatus: domain.StatusConfirmed,
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_RescheduleMovesBooking(t *testing.T) {
	booking := testBooking(domain.StatusConfirmed)
	bookings := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookings)

	// Перенос на среду 16.09, 11:00
	resp, err := uc.Execute(context.Background(), rescheduleRequest(customerID, 16, "11:00"))

	require.NoError(t, err)
	assert.True(t, bookings.rescheduled)
	assert.Equal(t, time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC), bookings.newDate)
	assert.Equal(t, types.TimeString("11:00"), bookings.newStartTime)

	assert.Equal(t, domain.StatusRescheduled, resp.Booking.Status)
	assert.Equal(t, bookings.newDate, resp.Booking.BookingDate)
	assert.Equal(t, types.TimeString("11:00"), resp.Booking.StartTime)
}

func TestExecute_RescheduleExcludesSelfFromConflicts(t *testing.T) {
	// Единственное бронирование в целевом слоте - само переносимое;
	// при MaxBookingsPerSlot = 1 перенос должен пройти
	booking := testBooking(domain.StatusConfirmed)
	self := *booking
	self.BookingDate = time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)
	self.StartTime = "11:00"

	bookings := &fakeBookingRepo{
		booking:         booking,
		serviceBookings: []*domain.Booking{&self},
	}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), rescheduleRequest(customerID, 16, "11:00"))
	assert.NoError(t, err)
}

func TestExecute_RescheduleIntoFullSlot(t *testing.T) {
	other := testBooking(domain.StatusConfirmed)
	other.ID = 2
	other.CustomerID = 8
	other.StartTime = "11:00"

	bookings := &fakeBookingRepo{
		booking:         testBooking(domain.StatusConfirmed),
		serviceBookings: []*domain.Booking{other},
	}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), rescheduleRequest(customerID, 16, "11:00"))

	assert.ErrorIs(t, err, ErrSlotFull)
	assert.False(t, bookings.rescheduled, "бронирование не должно быть изменено")
}

func TestExecute_RescheduleEmployeeConflict(t *testing.T) {
	employee := int64(42)
	booking := testBooking(domain.StatusConfirmed)
	booking.EmployeeID = &employee

	conflict := testBooking(domain.StatusConfirmed)
	conflict.ID = 3
	conflict.CompanyID = 2 // другая компания
	conflict.StartTime = "11:00"

	bookings := &fakeBookingRepo{
		booking:          booking,
		employeeBookings: []*domain.Booking{conflict},
	}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), rescheduleRequest(customerID, 16, "11:00"))

	assert.ErrorIs(t, err, ErrEmployeeConflict)
	assert.False(t, bookings.rescheduled)
}

func TestExecute_RescheduleOutOfWindow(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings)

	// Вторник 15.09 не входит в рабочие дни
	_, err := uc.Execute(context.Background(), rescheduleRequest(customerID, 15, "11:00"))

	assert.ErrorIs(t, err, ErrOutOfWindow)
	assert.False(t, bookings.rescheduled)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: testBooking(domain.StatusPending)})

	newDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)
	newStartTime := types.TimeString("11:00")

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "unknown status",
			req:  &Request{BookingID: 1, ActorID: managerID, TargetStatus: "no_show"},
		},
		{
			name: "reschedule without new slot",
			req:  &Request{BookingID: 1, ActorID: managerID, TargetStatus: domain.StatusRescheduled},
		},
		{
			name: "new slot on plain transition",
			req: &Request{
				BookingID:    1,
				ActorID:      managerID,
				TargetStatus: domain.StatusConfirmed,
				NewDate:      &newDate,
				NewStartTime: &newStartTime,
			},
		},
		{
			name: "non-positive booking id",
			req:  &Request{BookingID: 0, ActorID: managerID, TargetStatus: domain.StatusConfirmed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
