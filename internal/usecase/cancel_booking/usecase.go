package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PSM-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/PSM-SchedulingService/internal/infra/storage/booking"
	companyClient "github.com/m04kA/PSM-SchedulingService/internal/integrations/companyservice"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	companyClient CompanyServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	companyClient CompanyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		companyClient: companyClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute отменяет бронирование: переводит его в cancelled, сохраняет
// причину и время отмены. Отмена подчиняется общей машине статусов:
// из терминального статуса (включая уже отменённое) выход невозможен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d", req.BookingID, req.ActorID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// Отменить может клиент или менеджер компании
		if req.ActorID != booking.CustomerID {
			company, err := uc.companyClient.GetCompany(txCtx, booking.CompanyID)
			if err != nil {
				if errors.Is(err, companyClient.ErrCompanyNotFound) {
					uc.logger.Warn("CancelBooking: company id=%d not found", booking.CompanyID)
					return ErrCompanyNotFound
				}
				uc.logger.Error("CancelBooking: failed to get company id=%d: %v", booking.CompanyID, err)
				return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
			}

			if !isManager(req.ActorID, company) {
				uc.logger.Warn("CancelBooking: access denied for user=%d, booking=%d",
					req.ActorID, req.BookingID)
				return ErrAccessDenied
			}
		}

		// Терминальность проверяется первой: повторная отмена невозможна
		if booking.Status.IsTerminal() {
			return fmt.Errorf("%w: booking is %s", ErrTerminalState, booking.Status)
		}

		if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, domain.StatusCancelled)
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// Перечитываем строку, чтобы вернуть cancelled_at, выставленный БД
		cancelled, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to reread booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reread booking: %v", ErrInternal, err)
		}

		result = cancelled
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled", result.ID)

	return &Response{Booking: result}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// isManager проверяет, что пользователь является менеджером компании
func isManager(userID int64, company *companyClient.Company) bool {
	for _, id := range company.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
