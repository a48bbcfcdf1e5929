package verify_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/internal/integrations/mailservice"
)

// TokenRepository интерфейс репозитория токенов подтверждения
type TokenRepository interface {
	GetByToken(ctx context.Context, value uuid.UUID) (*domain.VerificationToken, error)
	MarkVerified(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// TxManager менеджер транзакций для атомарного подтверждения
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MailService интерфейс клиента почтового сервиса
type MailService interface {
	SendAppointmentConfirmed(ctx context.Context, details mailservice.AppointmentDetails) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
