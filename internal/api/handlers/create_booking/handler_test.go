package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PSM-SchedulingService/internal/api/middleware"
	createBooking "github.com/m04kA/PSM-SchedulingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error

	gotReq *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testResponse() *createBooking.Response {
	return &createBooking.Response{
		ID:              100,
		CustomerID:      7,
		CompanyID:       1,
		ServiceID:       10,
		BookingDate:     time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          "pending",
		ServiceName:     "Груминг",
		ServicePrice:    1500,
		CreatedAt:       time.Date(2026, time.September, 8, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, time.September, 8, 12, 0, 0, 0, time.UTC),
	}
}

const validBody = `{"companyId":1,"serviceId":10,"bookingDate":"2026-09-14","startTime":"10:00"}`

// doRequest прогоняет запрос через Auth middleware и handler, как в
// боевой маршрутизации
func doRequest(h *Handler, body string, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_CreatesBooking(t *testing.T) {
	uc := &fakeUseCase{resp: testResponse()}
	h := NewHandler(uc, noopLogger{})

	rec := doRequest(h, validBody, "7")

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "2026-09-14", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)

	// ID клиента берётся из заголовка, а не из тела
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(7), uc.gotReq.CustomerID)
}

func TestHandle_MissingUserHeader(t *testing.T) {
	uc := &fakeUseCase{resp: testResponse()}
	h := NewHandler(uc, noopLogger{})

	rec := doRequest(h, validBody, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.gotReq, "use case must not be called")
}

func TestHandle_InvalidBody(t *testing.T) {
	uc := &fakeUseCase{resp: testResponse()}
	h := NewHandler(uc, noopLogger{})

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{{{`},
		{name: "unknown field", body: `{"companyId":1,"serviceId":10,"bookingDate":"2026-09-14","startTime":"10:00","bogus":true}`},
		{name: "bad date format", body: `{"companyId":1,"serviceId":10,"bookingDate":"14.09.2026","startTime":"10:00"}`},
		{name: "bad time format", body: `{"companyId":1,"serviceId":10,"bookingDate":"2026-09-14","startTime":"25:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, tt.body, "7")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "company not found", err: createBooking.ErrCompanyNotFound, wantStatus: http.StatusNotFound},
		{name: "service not found", err: createBooking.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "schedule not configured", err: createBooking.ErrScheduleNotConfigured, wantStatus: http.StatusNotFound},
		{name: "slot full", err: createBooking.ErrSlotFull, wantStatus: http.StatusConflict},
		{name: "employee conflict", err: createBooking.ErrEmployeeConflict, wantStatus: http.StatusConflict},
		{name: "employee required", err: createBooking.ErrEmployeeRequired, wantStatus: http.StatusBadRequest},
		{name: "employee not assigned", err: createBooking.ErrEmployeeNotAssigned, wantStatus: http.StatusBadRequest},
		{name: "out of window", err: createBooking.ErrOutOfWindow, wantStatus: http.StatusBadRequest},
		{name: "too late to book", err: createBooking.ErrTooLateToBook, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal error", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, noopLogger{})

			rec := doRequest(h, validBody, "7")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
