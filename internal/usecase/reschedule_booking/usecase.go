package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockly/booking-service/internal/domain"
	availabilityRepo "github.com/clockly/booking-service/internal/infra/storage/availability"
	bookingRepo "github.com/clockly/booking-service/internal/infra/storage/booking"
	"github.com/clockly/booking-service/internal/integrations/mailservice"
	"github.com/clockly/booking-service/pkg/types"
)

type UseCase struct {
	providers    ProviderRepository
	availability AvailabilityRepository
	blackouts    BlackoutRepository
	bookings     BookingRepository
	txManager    TxManager
	mail         MailService
	timeProvider TimeProvider
	log          Logger
}

func New(
	providers ProviderRepository,
	availability AvailabilityRepository,
	blackouts BlackoutRepository,
	bookings BookingRepository,
	txManager TxManager,
	mail MailService,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		providers:    providers,
		availability: availability,
		blackouts:    blackouts,
		bookings:     bookings,
		txManager:    txManager,
		mail:         mail,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute переносит бронирование на новый слот
//
// Проверка конфликтов идентична созданию бронирования, но само
// переносимое бронирование из проверки исключается: перенос внутри
// собственного слота (например сдвиг на перекрывающееся время) допустим
func (uc *UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if err := validateRequest(req); err != nil {
		uc.log.Warn("[UseCase.Execute] Invalid request: %v", err)
		return Response{}, err
	}

	var updated *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := uc.bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return fmt.Errorf("%w: id %d", ErrBookingNotFound, req.BookingID)
			}
			return fmt.Errorf("%w: Execute - get booking: %w", ErrInternal, err)
		}

		if booking.ProviderID != req.ProviderID {
			return fmt.Errorf("%w: booking %d", ErrAccessDenied, req.BookingID)
		}
		if !booking.CanBeRescheduled() {
			return fmt.Errorf("%w: status %s", ErrCannotReschedule, booking.Status)
		}

		service, err := uc.providers.GetService(ctx, booking.ProviderID, booking.ServiceID)
		if err != nil {
			return fmt.Errorf("%w: Execute - get service: %w", ErrInternal, err)
		}

		endTime, err := domain.ComputeEnd(req.StartTime, service.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: slot crosses midnight", ErrInvalidInput)
		}

		if err := checkNotInPast(req.Date, req.StartTime, uc.timeProvider.Now()); err != nil {
			return err
		}

		window, err := uc.availability.FindCovering(ctx, booking.ProviderID, req.Date, req.StartTime, endTime)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				return fmt.Errorf("%w: %s-%s on %s", ErrNoAvailability, req.StartTime, endTime, req.Date.Format(domain.DateFormat))
			}
			return fmt.Errorf("%w: Execute - find window: %w", ErrInternal, err)
		}

		slot := domain.TimeRange{Start: req.StartTime, End: endTime}
		if err := uc.ensureSlotFree(ctx, booking, req.Date, slot); err != nil {
			return err
		}

		booking.WindowID = window.ID
		booking.Date = req.Date
		booking.StartTime = req.StartTime
		booking.EndTime = endTime
		booking.EndDatetime = endDatetime(req.Date, endTime)

		if err := uc.bookings.UpdateSchedule(ctx, booking); err != nil {
			return fmt.Errorf("%w: Execute - update schedule: %w", ErrInternal, err)
		}

		updated = booking
		return nil
	})
	if err != nil {
		return Response{}, err
	}

	if updated.Status == domain.StatusConfirmed {
		uc.notify(ctx, updated)
	}

	uc.log.Info("[UseCase.Execute] Booking %d rescheduled to %s %s-%s",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.StartTime, updated.EndTime)

	return Response{
		BookingID: updated.ID,
		Status:    updated.Status,
		Date:      updated.Date,
		StartTime: updated.StartTime,
		EndTime:   updated.EndTime,
	}, nil
}

// ensureSlotFree проверяет пересечения нового слота, исключая само
// переносимое бронирование
func (uc *UseCase) ensureSlotFree(ctx context.Context, booking *domain.Booking, date time.Time, slot domain.TimeRange) error {
	bookings, err := uc.bookings.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID: booking.ProviderID,
		Date:       &date,
	})
	if err != nil {
		return fmt.Errorf("%w: ensureSlotFree - get bookings: %w", ErrInternal, err)
	}
	for _, existing := range bookings {
		if existing.ID == booking.ID || !existing.IsActive() {
			continue
		}
		if domain.Overlaps(slot, existing.Range()) {
			return fmt.Errorf("%w: conflicts with booking %d", ErrSlotTaken, existing.ID)
		}
	}

	blackouts, err := uc.blackouts.GetByProviderAndDate(ctx, booking.ProviderID, date)
	if err != nil {
		return fmt.Errorf("%w: ensureSlotFree - get blackouts: %w", ErrInternal, err)
	}
	for _, blackout := range blackouts {
		if domain.Overlaps(slot, blackout.Range()) {
			return fmt.Errorf("%w: conflicts with blackout %d", ErrSlotTaken, blackout.ID)
		}
	}

	return nil
}

// notify отправляет клиенту подтверждение нового времени
// Ошибка почты не откатывает перенос, только логируется
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
		uc.log.Error("[UseCase.notify] Failed to send reschedule confirmation for booking %d: %v", booking.ID, err)
	}
}

// checkNotInPast отклоняет перенос на прошедшее время
func checkNotInPast(date time.Time, start types.TimeString, now time.Time) error {
	if startDatetime(date, start).Before(now) {
		return fmt.Errorf("%w: %s %s", ErrSlotInPast, date.Format(domain.DateFormat), start)
	}
	return nil
}

func startDatetime(date time.Time, start types.TimeString) time.Time {
	minutes, err := start.Minutes()
	if err != nil {
		return date
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute)
}

func endDatetime(date time.Time, end types.TimeString) time.Time {
	return startDatetime(date, end)
}
