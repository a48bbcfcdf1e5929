package models

import (
	"time"

	"github.com/clockly/booking-service/internal/domain"
)

// Request модели

// RegisterProviderRequest запрос на регистрацию провайдера
type RegisterProviderRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Response модели

// ProviderResponse ответ с публичными данными провайдера
type ProviderResponse struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse ответ со списком услуг провайдера
type ServiceListResponse struct {
	ProviderSlug string            `json:"providerSlug"`
	Services     []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainProvider конвертирует domain модель в DTO
func FromDomainProvider(p *domain.Provider) *ProviderResponse {
	if p == nil {
		return nil
	}
	return &ProviderResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

// FromDomainServices конвертирует список услуг в DTO
func FromDomainServices(slug string, services []*domain.Service) *ServiceListResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		if s == nil {
			continue
		}
		result = append(result, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}
	return &ServiceListResponse{ProviderSlug: slug, Services: result}
}
