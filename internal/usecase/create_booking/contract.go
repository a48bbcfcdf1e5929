package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/internal/integrations/mailservice"
	"github.com/clockly/booking-service/pkg/types"
)

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Provider, error)
	GetService(ctx context.Context, providerID, serviceID int64) (*domain.Service, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	FindCovering(ctx context.Context, providerID int64, date time.Time, start, end types.TimeString) (*domain.AvailabilityWindow, error)
}

// BlackoutRepository интерфейс репозитория окон недоступности
type BlackoutRepository interface {
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.BlackoutWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

// TokenRepository интерфейс репозитория токенов подтверждения
type TokenRepository interface {
	Create(ctx context.Context, t *domain.VerificationToken) (*domain.VerificationToken, error)
}

// TxManager менеджер транзакций для атомарной аллокации слота
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MailService интерфейс клиента почтового сервиса
type MailService interface {
	SendVerificationLink(ctx context.Context, email, link string) error
	SendAppointmentConfirmed(ctx context.Context, details mailservice.AppointmentDetails) error
}

// TokenGenerator генератор значений токенов подтверждения
type TokenGenerator interface {
	NewToken() uuid.UUID
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

// UUIDTokenGenerator генератор токенов на базе случайных UUID
type UUIDTokenGenerator struct{}

// NewToken возвращает новый случайный токен
func (g *UUIDTokenGenerator) NewToken() uuid.UUID {
	return uuid.New()
}
