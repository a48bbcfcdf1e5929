package verify_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockly/booking-service/internal/domain"
	bookingRepo "github.com/clockly/booking-service/internal/infra/storage/booking"
	tokenRepo "github.com/clockly/booking-service/internal/infra/storage/token"
	"github.com/clockly/booking-service/internal/integrations/mailservice"
	"github.com/clockly/booking-service/pkg/types"
)

type UseCase struct {
	tokens       TokenRepository
	bookings     BookingRepository
	txManager    TxManager
	mail         MailService
	timeProvider TimeProvider
	log          Logger
}

func New(
	tokens TokenRepository,
	bookings BookingRepository,
	txManager TxManager,
	mail MailService,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		tokens:       tokens,
		bookings:     bookings,
		txManager:    txManager,
		mail:         mail,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute погашает токен подтверждения и переводит бронирование в confirmed
//
// Погашение идемпотентно: повторный переход по ссылке возвращает успех
// с AlreadyVerified, статус не меняется и письмо повторно не отправляется.
// Токен и бронирование блокируются FOR UPDATE, поэтому конкурентные
// переходы по одной ссылке отправят ровно одно письмо
func (uc *UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	var (
		booking         *domain.Booking
		alreadyVerified bool
	)

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		token, err := uc.tokens.GetByToken(ctx, req.Token)
		if err != nil {
			if errors.Is(err, tokenRepo.ErrTokenNotFound) {
				return ErrInvalidToken
			}
			return fmt.Errorf("%w: Execute - get token: %w", ErrInternal, err)
		}

		booking, err = uc.bookings.GetByID(ctx, token.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				// Pending-бронирование уже удалено джобой очистки
				return ErrInvalidToken
			}
			return fmt.Errorf("%w: Execute - get booking: %w", ErrInternal, err)
		}

		if token.Verified || booking.Status == domain.StatusConfirmed {
			alreadyVerified = true
			return nil
		}

		if booking.Status == domain.StatusCancelled {
			return fmt.Errorf("%w: booking %d", ErrBookingCancelled, booking.ID)
		}

		if token.IsExpired(uc.timeProvider.Now()) {
			return fmt.Errorf("%w: token created at %s", ErrTokenExpired, token.CreatedAt.Format(time.RFC3339))
		}

		if err := uc.tokens.MarkVerified(ctx, token.ID); err != nil {
			return fmt.Errorf("%w: Execute - mark verified: %w", ErrInternal, err)
		}
		if err := uc.bookings.UpdateStatus(ctx, booking.ID, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("%w: Execute - update status: %w", ErrInternal, err)
		}
		booking.Status = domain.StatusConfirmed

		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if !alreadyVerified {
		uc.notify(ctx, booking)
		uc.log.Info("[UseCase.Execute] Booking %d confirmed", booking.ID)
	}

	return Response{
		BookingID:       booking.ID,
		Status:          booking.Status,
		Date:            booking.Date,
		StartTime:       booking.StartTime,
		EndTime:         booking.EndTime,
		AlreadyVerified: alreadyVerified,
	}, nil
}

// notify отправляет подтверждение с календарным приглашением
// Ошибка почты не откатывает подтверждение, только логируется
func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) {
	details := mailservice.AppointmentDetails{
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		ServiceName:   booking.ServiceName,
		Date:          booking.Date,
		Start:         startDatetime(booking.Date, booking.StartTime),
		End:           booking.EndDatetime,
	}
	if err := uc.mail.SendAppointmentConfirmed(ctx, details); err != nil {
		uc.log.Error("[UseCase.notify] Failed to send confirmation for booking %d: %v", booking.ID, err)
	}
}

func startDatetime(date time.Time, start types.TimeString) time.Time {
	minutes, err := start.Minutes()
	if err != nil {
		return date
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute)
}
