package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockly/booking-service/internal/domain"
	providerRepo "github.com/clockly/booking-service/internal/infra/storage/provider"
)

type UseCase struct {
	providers    ProviderRepository
	availability AvailabilityRepository
	blackouts    BlackoutRepository
	bookings     BookingRepository
	timeProvider TimeProvider
	log          Logger
}

func New(
	providers ProviderRepository,
	availability AvailabilityRepository,
	blackouts BlackoutRepository,
	bookings BookingRepository,
	timeProvider TimeProvider,
	log Logger,
) *UseCase {
	return &UseCase{
		providers:    providers,
		availability: availability,
		blackouts:    blackouts,
		bookings:     bookings,
		timeProvider: timeProvider,
		log:          log,
	}
}

// Execute возвращает свободные слоты провайдера на заданную дату
//
// Список слотов - рекомендация: он вычисляется вне транзакции и может
// устареть к моменту создания бронирования. Гарантию отсутствия
// конфликтов даёт только аллокатор
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

	durationMinutes := domain.DefaultServiceDurationMinutes
	var serviceID *int64
	if req.ServiceID != nil {
		service, err := uc.providers.GetService(ctx, provider.ID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrServiceNotFound) {
				return Response{}, fmt.Errorf("%w: id %d", ErrServiceNotFound, *req.ServiceID)
			}
			uc.log.Error("[UseCase.Execute] Failed to get service %d: %v", *req.ServiceID, err)
			return Response{}, fmt.Errorf("%w: Execute - get service: %v", ErrInternal, err)
		}
		durationMinutes = service.DurationMinutes
		serviceID = &service.ID
	}

	windows, err := uc.availability.GetActiveByProviderAndDate(ctx, provider.ID, req.Date)
	if err != nil {
		uc.log.Error("[UseCase.Execute] Failed to get windows for provider %d: %v", provider.ID, err)
		return Response{}, fmt.Errorf("%w: Execute - get windows: %v", ErrInternal, err)
	}

	bookings, err := uc.bookings.GetByProviderWithFilter(ctx, domain.ProviderBookingsFilter{
		ProviderID: provider.ID,
		Date:       &req.Date,
	})
	if err != nil {
		uc.log.Error("[UseCase.Execute] Failed to get bookings for provider %d: %v", provider.ID, err)
		return Response{}, fmt.Errorf("%w: Execute - get bookings: %v", ErrInternal, err)
	}

	blackouts, err := uc.blackouts.GetByProviderAndDate(ctx, provider.ID, req.Date)
	if err != nil {
		uc.log.Error("[UseCase.Execute] Failed to get blackouts for provider %d: %v", provider.ID, err)
		return Response{}, fmt.Errorf("%w: Execute - get blackouts: %v", ErrInternal, err)
	}

	slots := generateSlots(windows, bookings, blackouts, durationMinutes, req.Date, uc.timeProvider.Now())

	return Response{
		ProviderSlug:    provider.Slug,
		Date:            req.Date,
		ServiceID:       serviceID,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}
