package register_provider

import (
	"context"

	"github.com/clockly/booking-service/internal/service/providers/models"
)

type ProviderService interface {
	Register(ctx context.Context, req *models.RegisterProviderRequest) (*models.ProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
