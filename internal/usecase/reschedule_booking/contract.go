package reschedule_booking

import (
	"context"
	"time"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/internal/integrations/mailservice"
	"github.com/clockly/booking-service/pkg/types"
)

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
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
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
	UpdateSchedule(ctx context.Context, booking *domain.Booking) error
}

// TxManager менеджер транзакций для атомарного переноса слота
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
