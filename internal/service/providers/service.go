package providers

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/clockly/booking-service/internal/domain"
	providerRepo "github.com/clockly/booking-service/internal/infra/storage/provider"
	"github.com/clockly/booking-service/internal/service/providers/models"
)

// Service сервис для работы с провайдерами и их услугами
type Service struct {
	providerRepo ProviderRepository
	mail         MailService
	logger       Logger
}

// NewService создает новый экземпляр сервиса провайдеров
func NewService(providerRepo ProviderRepository, mail MailService, logger Logger) *Service {
	return &Service{
		providerRepo: providerRepo,
		mail:         mail,
		logger:       logger,
	}
}

// Register регистрирует нового провайдера
// Slug генерируется из отображаемого имени; коллизии разрешаются
// числовым суффиксом. При гонке на slug регистрация повторяется
func (s *Service) Register(ctx context.Context, req *models.RegisterProviderRequest) (*models.ProviderResponse, error) {
	s.logger.Info("Register: registering provider %q", req.DisplayName)

	if req.DisplayName == "" {
		return nil, fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}

	var created *domain.Provider
	for attempt := 0; attempt < 3; attempt++ {
		slug, err := s.generateSlug(ctx, req.DisplayName)
		if err != nil {
			return nil, err
		}

		created, err = s.providerRepo.Create(ctx, &domain.Provider{
			Slug:        slug,
			DisplayName: req.DisplayName,
			Email:       req.Email,
		})
		if err == nil {
			break
		}
		if errors.Is(err, providerRepo.ErrDuplicateSlug) {
			// Конкурентная регистрация заняла slug между проверкой и вставкой
			s.logger.Warn("Register: slug %q taken concurrently, retrying", slug)
			created = nil
			continue
		}
		s.logger.Error("Register: repository error for %q: %v", req.DisplayName, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}
	if created == nil {
		return nil, fmt.Errorf("%w: %s", ErrSlugUnavailable, req.DisplayName)
	}

	if err := s.mail.SendRegistrationSuccess(ctx, created.Email); err != nil {
		s.logger.Error("Register: failed to send welcome mail to provider %d: %v", created.ID, err)
	}

	s.logger.Info("Register: provider %d registered with slug %q", created.ID, created.Slug)
	return models.FromDomainProvider(created), nil
}

// GetBySlug получает публичный профиль провайдера по slug
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.ProviderResponse, error) {
	provider, err := s.providerRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug %q: %v", slug, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainProvider(provider), nil
}

// ListServices получает список услуг провайдера по slug
func (s *Service) ListServices(ctx context.Context, slug string) (*models.ServiceListResponse, error) {
	provider, err := s.providerRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, ErrProviderNotFound
		}
		s.logger.Error("ListServices: repository error for slug %q: %v", slug, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	services, err := s.providerRepo.ListServices(ctx, provider.ID)
	if err != nil {
		s.logger.Error("ListServices: repository error for provider %d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServices(provider.Slug, services), nil
}
