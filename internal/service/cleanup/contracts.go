package cleanup

import (
	"context"
	"time"

	"github.com/clockly/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	DeletePendingCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkReminded(ctx context.Context, id int64) error
}

// TokenRepository интерфейс репозитория токенов подтверждения
type TokenRepository interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MailService интерфейс клиента почтового сервиса
type MailService interface {
	SendReminder(ctx context.Context, email, customerName, serviceName string, start time.Time) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
