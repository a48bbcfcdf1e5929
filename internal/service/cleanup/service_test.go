package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/types"
)

type fakeBookingRepo struct {
	pendingCutoff time.Time
	endedCutoff   time.Time
	due           []*domain.Booking
	reminded      []int64
	markErr       error
}

func (f *fakeBookingRepo) DeletePendingCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.pendingCutoff = cutoff
	return 2, nil
}

func (f *fakeBookingRepo) DeleteEndedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.endedCutoff = cutoff
	return 1, nil
}

func (f *fakeBookingRepo) ListDueReminders(_ context.Context, _, _ time.Time) ([]*domain.Booking, error) {
	return f.due, nil
}

func (f *fakeBookingRepo) MarkReminded(_ context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.reminded = append(f.reminded, id)
	return nil
}

type fakeTokenRepo struct {
	cutoff time.Time
}

func (f *fakeTokenRepo) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 3, nil
}

type fakeMailService struct {
	reminders []string
	sendErr   error
}

func (f *fakeMailService) SendReminder(_ context.Context, email, _, _ string, _ time.Time) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.reminders = append(f.reminders, email)
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

func testNow() time.Time {
	return time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
}

func dueBooking(id int64, email string) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		Date:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("13:00"),
		CustomerName:  "Ivan Sidorov",
		CustomerEmail: email,
		ServiceName:   "Consultation",
		Status:        domain.StatusConfirmed,
	}
}

func newTestService(bookings *fakeBookingRepo, tokens *fakeTokenRepo, mail *fakeMailService) *Service {
	return NewService(bookings, tokens, mail, &fixedTimeProvider{now: testNow()}, noopLogger{}, time.Minute)
}

func TestRunOnce_CutoffsComputedFromRetention(t *testing.T) {
	bookings := &fakeBookingRepo{}
	tokens := &fakeTokenRepo{}
	svc := newTestService(bookings, tokens, &fakeMailService{})

	svc.RunOnce(context.Background())

	assert.Equal(t, testNow().Add(-domain.PendingRetention), bookings.pendingCutoff)
	assert.Equal(t, testNow().Add(-domain.BookingRetention), bookings.endedCutoff)
	assert.Equal(t, testNow().Add(-domain.VerificationTokenTTL), tokens.cutoff)
}

func TestRunOnce_SendsReminders(t *testing.T) {
	bookings := &fakeBookingRepo{due: []*domain.Booking{
		dueBooking(1, "ivan@example.com"),
		dueBooking(2, "olga@example.com"),
	}}
	mail := &fakeMailService{}
	svc := newTestService(bookings, &fakeTokenRepo{}, mail)

	svc.RunOnce(context.Background())

	assert.Equal(t, []int64{1, 2}, bookings.reminded)
	assert.Equal(t, []string{"ivan@example.com", "olga@example.com"}, mail.reminders)
}

func TestRunOnce_MarkFailureSkipsMail(t *testing.T) {
	bookings := &fakeBookingRepo{
		due:     []*domain.Booking{dueBooking(1, "ivan@example.com")},
		markErr: errors.New("boom"),
	}
	mail := &fakeMailService{}
	svc := newTestService(bookings, &fakeTokenRepo{}, mail)

	svc.RunOnce(context.Background())

	assert.Empty(t, mail.reminders)
}

func TestRunOnce_MailFailureStillMarks(t *testing.T) {
	// Флаг выставляется до отправки: упавшее письмо не будет повторено
	bookings := &fakeBookingRepo{due: []*domain.Booking{dueBooking(1, "ivan@example.com")}}
	mail := &fakeMailService{sendErr: errors.New("smtp down")}
	svc := newTestService(bookings, &fakeTokenRepo{}, mail)

	svc.RunOnce(context.Background())

	assert.Equal(t, []int64{1}, bookings.reminded)
	assert.Empty(t, mail.reminders)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	bookings := &fakeBookingRepo{}
	svc := newTestService(bookings, &fakeTokenRepo{}, &fakeMailService{})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	require.False(t, bookings.pendingCutoff.IsZero(), "first pass should run immediately")
}
