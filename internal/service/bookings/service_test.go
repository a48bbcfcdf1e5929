package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockly/booking-service/internal/domain"
	bookingRepo "github.com/clockly/booking-service/internal/infra/storage/booking"
	"github.com/clockly/booking-service/internal/service/bookings/models"
	"github.com/clockly/booking-service/pkg/ptr"
	"github.com/clockly/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, booking := range f.bookings {
		if booking.ProviderID != filter.ProviderID {
			continue
		}
		if !filter.IncludeCancelled && booking.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		result = append(result, booking)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	booking, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testBooking(id, providerID int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         id,
		ProviderID: providerID,
		Date:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
		EndTime:    types.TimeString("11:00"),
		Status:     status,
	}
}

func newTestService(bookings ...*domain.Booking) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return NewService(repo, noopLogger{}), repo
}

func TestGetByID_Success(t *testing.T) {
	svc, _ := newTestService(testBooking(1, 10, domain.StatusConfirmed))

	resp, err := svc.GetByID(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-09-10", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByID_ForeignProviderDenied(t *testing.T) {
	svc, _ := newTestService(testBooking(1, 10, domain.StatusConfirmed))

	_, err := svc.GetByID(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 1, 10)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_Success(t *testing.T) {
	svc, repo := newTestService(testBooking(1, 10, domain.StatusConfirmed))

	err := svc.Cancel(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, _ := newTestService(testBooking(1, 10, domain.StatusCancelled))

	err := svc.Cancel(context.Background(), 1, 10)

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_ForeignProviderDenied(t *testing.T) {
	svc, repo := newTestService(testBooking(1, 10, domain.StatusConfirmed))

	err := svc.Cancel(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}

func TestGetProviderBookings_ExcludesCancelledByDefault(t *testing.T) {
	svc, _ := newTestService(
		testBooking(1, 10, domain.StatusConfirmed),
		testBooking(2, 10, domain.StatusCancelled),
		testBooking(3, 10, domain.StatusPending),
	)

	resp, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{ProviderID: 10})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetProviderBookings_IncludeCancelled(t *testing.T) {
	svc, _ := newTestService(
		testBooking(1, 10, domain.StatusConfirmed),
		testBooking(2, 10, domain.StatusCancelled),
	)

	resp, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		ProviderID:       10,
		IncludeCancelled: true,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetProviderBookings_StatusFilter(t *testing.T) {
	svc, _ := newTestService(
		testBooking(1, 10, domain.StatusConfirmed),
		testBooking(2, 10, domain.StatusPending),
	)

	resp, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		ProviderID: 10,
		Status:     ptr.Ptr("pending"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "pending", resp.Bookings[0].Status)
}

func TestGetProviderBookings_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetProviderBookings(context.Background(), &models.GetProviderBookingsRequest{
		ProviderID: 10,
		Status:     ptr.Ptr("unknown"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
