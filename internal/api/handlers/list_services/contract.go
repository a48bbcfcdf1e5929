package list_services

import (
	"context"

	"github.com/clockly/booking-service/internal/service/providers/models"
)

type ProviderService interface {
	ListServices(ctx context.Context, slug string) (*models.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
