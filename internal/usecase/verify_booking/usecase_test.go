package verify_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockly/booking-service/internal/domain"
	bookingRepo "github.com/clockly/booking-service/internal/infra/storage/booking"
	tokenRepo "github.com/clockly/booking-service/internal/infra/storage/token"
	"github.com/clockly/booking-service/internal/integrations/mailservice"
	"github.com/clockly/booking-service/pkg/types"
)

type fakeTokenRepo struct {
	token *domain.VerificationToken
}

func (f *fakeTokenRepo) GetByToken(_ context.Context, value uuid.UUID) (*domain.VerificationToken, error) {
	if f.token == nil || f.token.Token != value {
		return nil, tokenRepo.ErrTokenNotFound
	}
	copied := *f.token
	return &copied, nil
}

func (f *fakeTokenRepo) MarkVerified(_ context.Context, id int64) error {
	if f.token == nil || f.token.ID != id {
		return tokenRepo.ErrTokenNotFound
	}
	f.token.Verified = true
	return nil
}

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if f.booking == nil || f.booking.ID != id {
		return bookingRepo.ErrBookingNotFound
	}
	f.booking.Status = status
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMailService struct {
	confirmations []mailservice.AppointmentDetails
}

func (f *fakeMailService) SendAppointmentConfirmed(_ context.Context, details mailservice.AppointmentDetails) error {
	f.confirmations = append(f.confirmations, details)
	return nil
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

var testToken = uuid.MustParse("7f9c24e8-3b12-40d3-941f-8f4c07e6f0a1")

func testNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

type testEnv struct {
	uc       *UseCase
	tokens   *fakeTokenRepo
	bookings *fakeBookingRepo
	mail     *fakeMailService
}

func newTestEnv(t *testing.T, tokenCreatedAt time.Time, bookingStatus domain.BookingStatus, verified bool) *testEnv {
	t.Helper()

	tokens := &fakeTokenRepo{token: &domain.VerificationToken{
		ID:        1,
		BookingID: 42,
		Email:     "ivan@example.com",
		Token:     testToken,
		Verified:  verified,
		CreatedAt: tokenCreatedAt,
	}}
	bookings := &fakeBookingRepo{booking: &domain.Booking{
		ID:            42,
		ProviderID:    1,
		Date:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:00"),
		EndTime:       types.TimeString("11:00"),
		CustomerName:  "Ivan Sidorov",
		CustomerEmail: "ivan@example.com",
		ServiceName:   "Consultation",
		Status:        bookingStatus,
	}}
	mail := &fakeMailService{}

	uc := New(tokens, bookings, passthroughTxManager{}, mail, &fixedTimeProvider{now: testNow()}, noopLogger{})

	return &testEnv{uc: uc, tokens: tokens, bookings: bookings, mail: mail}
}

func TestExecute_ConfirmsPendingBooking(t *testing.T) {
	env := newTestEnv(t, testNow().Add(-5*time.Minute), domain.StatusPending, false)

	resp, err := env.uc.Execute(context.Background(), Request{Token: testToken})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.False(t, resp.AlreadyVerified)
	assert.Equal(t, domain.StatusConfirmed, env.bookings.booking.Status)
	assert.True(t, env.tokens.token.Verified)
	require.Len(t, env.mail.confirmations, 1)
	assert.Equal(t, "ivan@example.com", env.mail.confirmations[0].CustomerEmail)
}

func TestExecute_RepeatedRedeemIdempotent(t *testing.T) {
	env := newTestEnv(t, testNow().Add(-5*time.Minute), domain.StatusConfirmed, true)

	resp, err := env.uc.Execute(context.Background(), Request{Token: testToken})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyVerified)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	// Повторное письмо не отправляется
	assert.Empty(t, env.mail.confirmations)
}

func TestExecute_ExpiredToken(t *testing.T) {
	env := newTestEnv(t, testNow().Add(-domain.VerificationTokenTTL-time.Minute), domain.StatusPending, false)

	_, err := env.uc.Execute(context.Background(), Request{Token: testToken})

	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, domain.StatusPending, env.bookings.booking.Status)
	assert.Empty(t, env.mail.confirmations)
}

func TestExecute_ExpiredButAlreadyConfirmedStillSucceeds(t *testing.T) {
	// Идемпотентность важнее TTL: если бронирование уже подтверждено,
	// просроченность токена не превращает повторный переход в ошибку
	env := newTestEnv(t, testNow().Add(-2*domain.VerificationTokenTTL), domain.StatusConfirmed, true)

	resp, err := env.uc.Execute(context.Background(), Request{Token: testToken})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyVerified)
}

func TestExecute_UnknownToken(t *testing.T) {
	env := newTestEnv(t, testNow(), domain.StatusPending, false)

	_, err := env.uc.Execute(context.Background(), Request{Token: uuid.New()})

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, env.mail.confirmations)
}

func TestExecute_PurgedBookingInvalidToken(t *testing.T) {
	env := newTestEnv(t, testNow().Add(-5*time.Minute), domain.StatusPending, false)
	env.bookings.booking = nil

	_, err := env.uc.Execute(context.Background(), Request{Token: testToken})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExecute_CancelledBooking(t *testing.T) {
	env := newTestEnv(t, testNow().Add(-5*time.Minute), domain.StatusCancelled, false)

	_, err := env.uc.Execute(context.Background(), Request{Token: testToken})

	assert.ErrorIs(t, err, ErrBookingCancelled)
	assert.Empty(t, env.mail.confirmations)
}
