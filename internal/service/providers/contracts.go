package providers

import (
	"context"

	"github.com/clockly/booking-service/internal/domain"
)

// ProviderRepository интерфейс репозитория провайдеров
type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Provider, error)
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListServices(ctx context.Context, providerID int64) ([]*domain.Service, error)
}

// MailService интерфейс клиента почтового сервиса
type MailService interface {
	SendRegistrationSuccess(ctx context.Context, email string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
