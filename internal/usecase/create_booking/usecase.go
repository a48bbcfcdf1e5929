package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockly/booking-service/internal/domain"
	availabilityRepo "github.com/clockly/booking-service/internal/infra/storage/availability"
	providerRepo "github.com/clockly/booking-service/internal/infra/storage/provider"
	"github.com/clockly/booking-service/internal/integrations/mailservice"
	"github.com/clockly/booking-service/pkg/types"
)

type UseCase struct {
	providers    ProviderRepository
	availability AvailabilityRepository
	blackouts    BlackoutRepository
	bookings     BookingRepository
	tokens       TokenRepository
	txManager    TxManager
	mail         MailService
	tokenGen     TokenGenerator
	timeProvider TimeProvider
	log          Logger

	verificationBaseURL string
}

func New(
	providers ProviderRepository,
	availability AvailabilityRepository,
	blackouts BlackoutRepository,
	bookings BookingRepository,
	tokens TokenRepository,
	txManager TxManager,
	mail MailService,
	tokenGen TokenGenerator,
	timeProvider TimeProvider,
	log Logger,
	verificationBaseURL string,
) *UseCase {
	return &UseCase{
		providers:           providers,
		availability:        availability,
		blackouts:           blackouts,
		bookings:            bookings,
		tokens:              tokens,
		txManager:           txManager,
		mail:                mail,
		tokenGen:            tokenGen,
		timeProvider:        timeProvider,
		log:                 log,
		verificationBaseURL: verificationBaseURL,
	}
}

// Execute атомарно выделяет слот и создаёт бронирование
//
// Вся проверка конфликтов выполняется внутри одной транзакции: окно
// доступности и бронирования дня блокируются FOR UPDATE, поэтому из
// N конкурентных запросов на один слот ровно один создаст бронирование,
// остальные получат ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if err := validateRequest(req); err != nil {
		uc.log.Warn("[UseCase.Execute] Invalid request: %v", err)
		return Response{}, err
	}

	provider, err := uc.providers.GetBySlug(ctx, req.ProviderSlug)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return Response{}, fmt.Errorf("%w: slug %q", ErrProviderNotFound, req.ProviderSlug)
		}
		uc.log.Error("[UseCase.Execute] Failed to get provider %q: %v", req.ProviderSlug, err)
		return Response{}, fmt.Errorf("%w: Execute - get provider: %v", ErrInternal, err)
	}

	service, err := uc.providers.GetService(ctx, provider.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrServiceNotFound) {
			return Response{}, fmt.Errorf("%w: id %d", ErrServiceNotFound, req.ServiceID)
		}
		uc.log.Error("[UseCase.Execute] Failed to get service %d: %v", req.ServiceID, err)
		return Response{}, fmt.Errorf("%w: Execute - get service: %v", ErrInternal, err)
	}

	endTime, err := domain.ComputeEnd(req.StartTime, service.DurationMinutes)
	if err != nil {
		return Response{}, fmt.Errorf("%w: slot crosses midnight", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if err := checkNotInPast(req.Date, req.StartTime, now); err != nil {
		return Response{}, err
	}

	status := domain.StatusPending
	if req.AuthProviderID != nil && *req.AuthProviderID == provider.ID {
		status = domain.StatusConfirmed
	}

	booking := &domain.Booking{
		ProviderID:    provider.ID,
		ServiceID:     service.ID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       endTime,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Note:          req.Note,
		Status:        status,
		ServiceName:   service.Name,
		ServicePrice:  service.Price,
		EndDatetime:   endDatetime(req.Date, endTime),
	}

	var token *domain.VerificationToken

	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		window, err := uc.availability.FindCovering(ctx, provider.ID, req.Date, req.StartTime, endTime)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
				return fmt.Errorf("%w: %s-%s on %s", ErrNoAvailability, req.StartTime, endTime, req.Date.Format(domain.DateFormat))
			}
			return fmt.Errorf("%w: Execute - find window: %w", ErrInternal, err)
		}
		booking.WindowID = window.ID

		if err := uc.ensureSlotFree(ctx, provider.ID, req.Date, booking.Range()); err != nil {
			return err
		}

		created, err := uc.bookings.Create(ctx, booking)
		if err != nil {
			return fmt.Errorf("%w: Execute - create booking: %w", ErrInternal, err)
		}
		booking = created

		if status == domain.StatusPending {
			token, err = uc.tokens.Create(ctx, &domain.VerificationToken{
				BookingID: booking.ID,
				Email:     booking.CustomerEmail,
				Token:     uc.tokenGen.NewToken(),
			})
			if err != nil {
				return fmt.Errorf("%w: Execute - create token: %w", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return Response{}, err
	}

	verificationSent := uc.notify(ctx, booking, service, token)

	uc.log.Info("[UseCase.Execute] Booking %d created for provider %d, slot %s-%s, status %s",
		booking.ID, provider.ID, booking.StartTime, booking.EndTime, booking.Status)

	return Response{
		BookingID:        booking.ID,
		Status:           booking.Status,
		StartTime:        booking.StartTime,
		EndTime:          booking.EndTime,
		Date:             booking.Date,
		VerificationSent: verificationSent,
	}, nil
}

// ensureSlotFree проверяет пересечения слота с активными бронированиями
// и перерывами дня. Должна вызываться только внутри транзакции:
// выборка бронирований по дате блокирует строки FOR UPDATE
func (uc *UseCase) ensureSlotFree(ctx context.Context, providerID int64, date time.Time, slot domain.TimeRange) error {
	bookings, err := uc.bookings.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID: providerID,
		Date:       &date,
	})
	if err != nil {
		return fmt.Errorf("%w: ensureSlotFree - get bookings: %w", ErrInternal, err)
	}
	for _, existing := range bookings {
		if !existing.IsActive() {
			continue
		}
		if domain.Overlaps(slot, existing.Range()) {
			return fmt.Errorf("%w: conflicts with booking %d", ErrSlotTaken, existing.ID)
		}
	}

	blackouts, err := uc.blackouts.GetByProviderAndDate(ctx, providerID, date)
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

// notify отправляет письмо после коммита транзакции
// Ошибка почты не откатывает бронирование, только логируется
func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking, service *domain.Service, token *domain.VerificationToken) bool {
	if token != nil {
		link := fmt.Sprintf("%s/verify/%s", uc.verificationBaseURL, token.Token)
		if err := uc.mail.SendVerificationLink(ctx, booking.CustomerEmail, link); err != nil {
			uc.log.Error("[UseCase.notify] Failed to send verification link for booking %d: %v", booking.ID, err)
			return false
		}
		return true
	}

	start := startDatetime(booking.Date, booking.StartTime)
	details := mailservice.AppointmentDetails{
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		ServiceName:   service.Name,
		Date:          booking.Date,
		Start:         start,
		End:           booking.EndDatetime,
	}
	if err := uc.mail.SendAppointmentConfirmed(ctx, details); err != nil {
		uc.log.Error("[UseCase.notify] Failed to send confirmation for booking %d: %v", booking.ID, err)
	}
	return false
}

// checkNotInPast отклоняет бронирование на прошедшее время
func checkNotInPast(date time.Time, start types.TimeString, now time.Time) error {
	startAt := startDatetime(date, start)
	if startAt.Before(now) {
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
