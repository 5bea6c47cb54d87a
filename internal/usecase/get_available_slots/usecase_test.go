package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	configRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/config"
	"github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
	"github.com/m04kA/PSM-SchedulingService/pkg/types"
)

// --- fakes ---

type fakeBookingRepo struct {
	bookingsByDate   map[string][]*domain.Booking
	employeeBookings map[string][]*domain.Booking
	err              error
}

func (f *fakeBookingRepo) GetByCompanyWithFilter(_ context.Context, filter domain.CompanyBookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if filter.StartDate == nil {
		return nil, nil
	}
	return f.bookingsByDate[filter.StartDate.Format(domain.DateFormat)], nil
}

func (f *fakeBookingRepo) GetByEmployeeAndDate(_ context.Context, _ int64, date time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employeeBookings[date.Format(domain.DateFormat)], nil
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
	companyErr error
	serviceErr error
}

func (f *fakeCompanyClient) GetCompany(_ context.Context, companyID int64) (*companyservice.Company, error) {
	if f.companyErr != nil {
		return nil, f.companyErr
	}
	return &companyservice.Company{ID: companyID}, nil
}

func (f *fakeCompanyClient) GetService(_ context.Context, companyID, serviceID int64) (*companyservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return &companyservice.Service{ID: serviceID, CompanyID: companyID, IsActive: true}, nil
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

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testConfig() *domain.ServiceScheduleConfig {
	return &domain.ServiceScheduleConfig{
		ID:                 1,
		CompanyID:          1,
		ServiceID:          10,
		DurationMinutes:    60,
		AvailableDays:      []time.Weekday{time.Monday, time.Wednesday},
		StartTime:          "09:00",
		EndTime:            "11:00",
		MaxBookingsPerSlot: 2,
		AdvanceBookingDays: 30,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, configs *fakeConfigRepo, client *fakeCompanyClient, now time.Time) *UseCase {
	uc := NewUseCase(bookings, configs, client, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func activeBooking(id int64, start types.TimeString, durationMinutes int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

// --- tests ---

// 2026-09-07 is a Monday.
var now = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func TestExecute_GeneratesSlotsOnAvailableDays(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: testConfig()}, &fakeCompanyClient{}, now)

	// Mon 07.09 .. Sun 13.09
	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 14),
	})

	require.NoError(t, err)
	// два рабочих дня (пн и ср) по два часовых слота в окне 09:00-11:00
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, date(2026, time.September, 7), resp.Slots[0].Date)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].StartTime)

	assert.Equal(t, date(2026, time.September, 9), resp.Slots[2].Date)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[2].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[3].StartTime)

	for _, slot := range resp.Slots {
		assert.Equal(t, 60, slot.DurationMinutes)
		assert.Equal(t, 2, slot.TotalSpots)
		assert.Equal(t, 2, slot.AvailableSpots)
	}
}

func TestExecute_DropsPartialTrailingSlot(t *testing.T) {
	cfg := testConfig()
	cfg.EndTime = "10:30" // окно 09:00-10:30, второй часовой слот не помещается

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: cfg}, &fakeCompanyClient{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 8),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_NoAvailableDaysMeansEmptyResult(t *testing.T) {
	cfg := testConfig()
	cfg.AvailableDays = nil

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: cfg}, &fakeCompanyClient{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 14),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_TodayFilteredByBookingNotice(t *testing.T) {
	cfg := testConfig()
	cfg.MinBookingNoticeMinutes = 120

	// Сегодня понедельник 07.09, 08:30: слот 09:00 уже ближе двух часов
	todayNow := time.Date(2026, time.September, 7, 8, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: cfg}, &fakeCompanyClient{}, todayNow)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 8),
	})

	require.NoError(t, err)
	// порог 10:30: оба слота (09:00 и 10:00) начинаются раньше
	require.Empty(t, resp.Slots)
}

func TestExecute_CapacityReducedByActiveBookings(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookingsByDate: map[string][]*domain.Booking{
			"2026-09-07": {
				activeBooking(1, "09:00", 60),
				activeBooking(2, "09:00", 60),
				activeBooking(3, "10:00", 60),
			},
		},
	}

	uc := newTestUseCase(bookings, &fakeConfigRepo{config: testConfig()}, &fakeCompanyClient{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 8),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 0, resp.Slots[0].AvailableSpots, "слот 09:00 занят полностью")
	assert.Equal(t, 1, resp.Slots[1].AvailableSpots, "на 10:00 занято одно место из двух")
}

func TestExecute_BufferOfExistingBookingBlocksNeighbourSlot(t *testing.T) {
	cfg := testConfig()
	cfg.BufferAfterMinutes = 15

	bookings := &fakeBookingRepo{
		bookingsByDate: map[string][]*domain.Booking{
			"2026-09-07": {activeBooking(1, "09:00", 60)},
		},
	}

	uc := newTestUseCase(bookings, &fakeConfigRepo{config: cfg}, &fakeCompanyClient{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 8),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	// буфер 09:00-10:15 задевает слот 10:00
	assert.Equal(t, 1, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 1, resp.Slots[1].AvailableSpots)
}

func TestExecute_EmployeeConflictClosesSlot(t *testing.T) {
	employeeID := int64(42)
	bookings := &fakeBookingRepo{
		employeeBookings: map[string][]*domain.Booking{
			// бронирование сотрудника из другой компании на 10:00
			"2026-09-07": {activeBooking(99, "10:00", 60)},
		},
	}

	uc := newTestUseCase(bookings, &fakeConfigRepo{config: testConfig()}, &fakeCompanyClient{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID:  1,
		ServiceID:  10,
		From:       date(2026, time.September, 7),
		To:         date(2026, time.September, 8),
		EmployeeID: &employeeID,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
	assert.Equal(t, 0, resp.Slots[1].AvailableSpots, "личный конфликт сотрудника закрывает слот")
}

func TestExecute_ScheduleNotConfigured(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, &fakeCompanyClient{}, now)

	_, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 8),
	})

	assert.ErrorIs(t, err, ErrScheduleNotConfigured)
}

func TestExecute_CompanyAndServiceNotFound(t *testing.T) {
	req := &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.September, 7),
		To:        date(2026, time.September, 8),
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: testConfig()},
		&fakeCompanyClient{companyErr: companyservice.ErrCompanyNotFound}, now)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCompanyNotFound)

	uc = newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: testConfig()},
		&fakeCompanyClient{serviceErr: companyservice.ErrServiceNotFound}, now)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_RangeOutsideBookingWindow(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: testConfig()}, &fakeCompanyClient{}, now)

	// диапазон в прошлом
	_, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.August, 1),
		To:        date(2026, time.August, 2),
	})
	assert.ErrorIs(t, err, ErrOutOfWindow)

	// диапазон дальше advanceBookingDays (30 дней от 01.09)
	_, err = uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2026, time.October, 10),
		To:        date(2026, time.October, 11),
	})
	assert.ErrorIs(t, err, ErrOutOfWindow)
}

func TestExecute_UnlimitedAdvanceWindow(t *testing.T) {
	cfg := testConfig()
	cfg.AdvanceBookingDays = 0

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: cfg}, &fakeCompanyClient{}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		CompanyID: 1,
		ServiceID: 10,
		From:      date(2027, time.March, 1), // понедельник через полгода
		To:        date(2027, time.March, 2),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeConfigRepo{config: testConfig()}, &fakeCompanyClient{}, now)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "non-positive company id",
			req:  &Request{CompanyID: 0, ServiceID: 10, From: date(2026, time.September, 7), To: date(2026, time.September, 8)},
		},
		{
			name: "non-positive service id",
			req:  &Request{CompanyID: 1, ServiceID: -1, From: date(2026, time.September, 7), To: date(2026, time.September, 8)},
		},
		{
			name: "missing dates",
			req:  &Request{CompanyID: 1, ServiceID: 10},
		},
		{
			name: "from not before to",
			req:  &Request{CompanyID: 1, ServiceID: 10, From: date(2026, time.September, 8), To: date(2026, time.September, 8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
