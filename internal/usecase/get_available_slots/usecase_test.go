package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockly/booking-service/internal/domain"
	providerRepo "github.com/clockly/booking-service/internal/infra/storage/provider"
	"github.com/clockly/booking-service/pkg/ptr"
)

type fakeProviderRepo struct {
	provider *domain.Provider
	service  *domain.Service
}

func (f *fakeProviderRepo) GetBySlug(_ context.Context, slug string) (*domain.Provider, error) {
	if f.provider == nil || f.provider.Slug != slug {
		return nil, providerRepo.ErrProviderNotFound
	}
	return f.provider, nil
}

func (f *fakeProviderRepo) GetService(_ context.Context, providerID, serviceID int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != serviceID || f.service.ProviderID != providerID {
		return nil, providerRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type fakeAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) GetActiveByProviderAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

type fakeBlackoutRepo struct {
	blackouts []*domain.BlackoutWindow
}

func (f *fakeBlackoutRepo) GetByProviderAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.BlackoutWindow, error) {
	return f.blackouts, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(
	providers *fakeProviderRepo,
	windows []*domain.AvailabilityWindow,
	bookings []*domain.Booking,
	now time.Time,
) *UseCase {
	return New(
		providers,
		&fakeAvailabilityRepo{windows: windows},
		&fakeBlackoutRepo{},
		&fakeBookingRepo{bookings: bookings},
		&fixedTimeProvider{now: now},
		noopLogger{},
	)
}

func TestExecute_Success(t *testing.T) {
	providers := &fakeProviderRepo{
		provider: &domain.Provider{ID: 1, Slug: "anna-petrova"},
		service:  &domain.Service{ID: 7, ProviderID: 1, Name: "Consultation", DurationMinutes: 60},
	}
	windows := []*domain.AvailabilityWindow{makeWindow("09:00", "12:00")}
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(providers, windows, nil, now)

	resp, err := uc.Execute(context.Background(), Request{
		ProviderSlug: "anna-petrova",
		ServiceID:    ptr.Ptr(int64(7)),
		Date:         date,
	})

	require.NoError(t, err)
	assert.Equal(t, "anna-petrova", resp.ProviderSlug)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, slotTimes(resp.Slots))
}

func TestExecute_DefaultDurationWithoutService(t *testing.T) {
	providers := &fakeProviderRepo{
		provider: &domain.Provider{ID: 1, Slug: "anna-petrova"},
	}
	windows := []*domain.AvailabilityWindow{makeWindow("09:00", "11:00")}
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(providers, windows, nil, now)

	resp, err := uc.Execute(context.Background(), Request{
		ProviderSlug: "anna-petrova",
		Date:         date,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, resp.DurationMinutes)
	assert.Nil(t, resp.ServiceID)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotTimes(resp.Slots))
}

func TestExecute_BookingsExcluded(t *testing.T) {
	providers := &fakeProviderRepo{
		provider: &domain.Provider{ID: 1, Slug: "anna-petrova"},
	}
	windows := []*domain.AvailabilityWindow{makeWindow("09:00", "12:00")}
	bookings := []*domain.Booking{makeBooking("10:00", "11:00", domain.StatusConfirmed)}
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(providers, windows, bookings, now)

	resp, err := uc.Execute(context.Background(), Request{
		ProviderSlug: "anna-petrova",
		Date:         date,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00"}, slotTimes(resp.Slots))
}

func TestExecute_ProviderNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeProviderRepo{}, nil, nil, time.Now())

	_, err := uc.Execute(context.Background(), Request{
		ProviderSlug: "ghost",
		Date:         time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	providers := &fakeProviderRepo{
		provider: &domain.Provider{ID: 1, Slug: "anna-petrova"},
	}
	uc := newTestUseCase(providers, nil, nil, time.Now())

	_, err := uc.Execute(context.Background(), Request{
		ProviderSlug: "anna-petrova",
		ServiceID:    ptr.Ptr(int64(99)),
		Date:         time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(&fakeProviderRepo{}, nil, nil, time.Now())

	_, err := uc.Execute(context.Background(), Request{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
