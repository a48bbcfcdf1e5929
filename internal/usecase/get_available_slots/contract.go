package get_available_slots

import (
	"context"
	"time"

	"github.com/clockly/booking-service/internal/domain"
)

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Provider, error)
	GetService(ctx context.Context, providerID, serviceID int64) (*domain.Service, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.AvailabilityWindow, error)
}

// BlackoutRepository интерфейс репозитория окон недоступности
type BlackoutRepository interface {
	GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.BlackoutWindow, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
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
