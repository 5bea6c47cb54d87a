package cancel_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
)

// --- fakes ---

type fakeBookingRepo struct {
	booking *domain.Booking

	cancelled       bool
	cancelledReason *string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

// Cancel имитирует UPDATE: статус, причина и cancelled_at выставляются
// в хранимой записи, как это делает БД
func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason *string) error {
	f.cancelled = true
	f.cancelledReason = reason

	f.booking.Status = domain.StatusCancelled
	f.booking.CancellationReason = reason
	cancelledAt := time.Date(2026, time.September, 8, 12, 0, 0, 0, time.UTC)
	f.booking.CancelledAt = &cancelledAt
	return nil
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

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         1,
		CustomerID: customerID,
		CompanyID:  1,
		ServiceID:  10,
		StartTime:  "10:00",
		Status:     status,
	}
}

func newTestUseCase(bookings *fakeBookingRepo) *UseCase {
	return NewUseCase(
		bookings,
		&fakeCompanyClient{company: &companyservice.Company{ID: 1, ManagerIDs: []int64{managerID}}},
		fakeTxManager{},
		noopLogger{},
	)
}

// --- tests ---

func TestExecute_OwnerCancelsWithReason(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings)

	reason := "передумал"
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		ActorID:   customerID,
		Reason:    &reason,
	})

	require.NoError(t, err)
	assert.True(t, bookings.cancelled)
	require.NotNil(t, bookings.cancelledReason)
	assert.Equal(t, reason, *bookings.cancelledReason)

	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	require.NotNil(t, resp.Booking.CancelledAt, "cancelled_at должен вернуться из перечитанной строки")
	require.NotNil(t, resp.Booking.CancellationReason)
	assert.Equal(t, reason, *resp.Booking.CancellationReason)
}

func TestExecute_ReasonIsOptional(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusPending)}
	uc := newTestUseCase(bookings)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: customerID})

	require.NoError(t, err)
	assert.Nil(t, bookings.cancelledReason)
	assert.Nil(t, resp.Booking.CancellationReason)
}

func TestExecute_ManagerCancelsForeignBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: managerID})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
}

func TestExecute_StrangerDenied(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: strangerID})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, bookings.cancelled)
}

func TestExecute_DoubleCancelReturnsTerminalState(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusCancelled)}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: customerID})

	assert.ErrorIs(t, err, ErrTerminalState)
	assert.False(t, bookings.cancelled)
}

func TestExecute_CompletedBookingCannotBeCancelled(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusCompleted)}
	uc := newTestUseCase(bookings)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: managerID})

	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, ActorID: customerID})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ReasonTooLong(t *testing.T) {
	bookings := &fakeBookingRepo{booking: testBooking(domain.StatusConfirmed)}
	uc := newTestUseCase(bookings)

	reason := strings.Repeat("a", domain.MaxCancellationReasonLength+1)
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 1,
		ActorID:   customerID,
		Reason:    &reason,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, bookings.cancelled)
}
