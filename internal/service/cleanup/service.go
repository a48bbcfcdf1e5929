package cleanup

import (
	"context"
	"time"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/types"
)

// Service фоновый воркер обслуживания расписания
//
// Выполняет четыре задачи на каждом тике:
// - удаляет pending-бронирования, не подтверждённые за domain.PendingRetention;
// - удаляет бронирования, завершившиеся раньше domain.BookingRetention;
// - удаляет токены подтверждения с истёкшим TTL;
// - рассылает напоминания о бронированиях, начинающихся в ближайшие
//   domain.ReminderLookahead
type Service struct {
	bookingRepo  BookingRepository
	tokenRepo    TokenRepository
	mail         MailService
	timeProvider TimeProvider
	logger       Logger

	interval time.Duration
}

// NewService создает новый экземпляр воркера очистки
func NewService(
	bookingRepo BookingRepository,
	tokenRepo TokenRepository,
	mail MailService,
	timeProvider TimeProvider,
	logger Logger,
	interval time.Duration,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		tokenRepo:    tokenRepo,
		mail:         mail,
		timeProvider: timeProvider,
		logger:       logger,
		interval:     interval,
	}
}

// Run запускает воркер до отмены контекста
// Первый проход выполняется сразу, без ожидания тика
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("Cleanup worker started, interval=%s", s.interval)

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход всех задач обслуживания
// Ошибка одной задачи не прерывает остальные
func (s *Service) RunOnce(ctx context.Context) {
	now := s.timeProvider.Now()

	s.purgeStalePending(ctx, now)
	s.purgeEndedBookings(ctx, now)
	s.purgeExpiredTokens(ctx, now)
	s.sendReminders(ctx, now)
}

// purgeStalePending удаляет неподтверждённые бронирования, освобождая их слоты
func (s *Service) purgeStalePending(ctx context.Context, now time.Time) {
	cutoff := now.Add(-domain.PendingRetention)

	deleted, err := s.bookingRepo.DeletePendingCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("purgeStalePending: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("purgeStalePending: deleted %d stale pending bookings", deleted)
	}
}

// purgeEndedBookings удаляет давно завершившиеся бронирования независимо от статуса
func (s *Service) purgeEndedBookings(ctx context.Context, now time.Time) {
	cutoff := now.Add(-domain.BookingRetention)

	deleted, err := s.bookingRepo.DeleteEndedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("purgeEndedBookings: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("purgeEndedBookings: deleted %d old bookings", deleted)
	}
}

// purgeExpiredTokens удаляет токены подтверждения с истёкшим TTL
func (s *Service) purgeExpiredTokens(ctx context.Context, now time.Time) {
	cutoff := now.Add(-domain.VerificationTokenTTL)

	deleted, err := s.tokenRepo.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("purgeExpiredTokens: %v", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("purgeExpiredTokens: deleted %d expired tokens", deleted)
	}
}

// sendReminders рассылает напоминания о скорых бронированиях
// Флаг was_reminded выставляется до отправки письма: потерянное письмо
// дешевле дубликата при падении между отправкой и отметкой
func (s *Service) sendReminders(ctx context.Context, now time.Time) {
	to := now.Add(domain.ReminderLookahead)

	due, err := s.bookingRepo.ListDueReminders(ctx, now, to)
	if err != nil {
		s.logger.Error("sendReminders: list due: %v", err)
		return
	}

	for _, booking := range due {
		if err := s.bookingRepo.MarkReminded(ctx, booking.ID); err != nil {
			s.logger.Error("sendReminders: mark booking %d: %v", booking.ID, err)
			continue
		}

		start := startDatetime(booking.Date, booking.StartTime)
		if err := s.mail.SendReminder(ctx, booking.CustomerEmail, booking.CustomerName, booking.ServiceName, start); err != nil {
			s.logger.Error("sendReminders: send for booking %d: %v", booking.ID, err)
			continue
		}
		s.logger.Info("sendReminders: reminder sent for booking %d", booking.ID)
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
