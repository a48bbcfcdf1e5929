package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockly/booking-service/internal/domain"
	providerRepo "github.com/clockly/booking-service/internal/infra/storage/provider"
	"github.com/clockly/booking-service/internal/service/providers/models"
)

type fakeProviderRepo struct {
	nextID    int64
	providers map[string]*domain.Provider
	services  map[int64][]*domain.Service
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{
		nextID:    1,
		providers: make(map[string]*domain.Provider),
		services:  make(map[int64][]*domain.Service),
	}
}

func (f *fakeProviderRepo) Create(_ context.Context, provider *domain.Provider) (*domain.Provider, error) {
	if _, exists := f.providers[provider.Slug]; exists {
		return nil, providerRepo.ErrDuplicateSlug
	}
	created := *provider
	created.ID = f.nextID
	f.nextID++
	f.providers[created.Slug] = &created
	return &created, nil
}

func (f *fakeProviderRepo) GetBySlug(_ context.Context, slug string) (*domain.Provider, error) {
	provider, ok := f.providers[slug]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return provider, nil
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	for _, provider := range f.providers {
		if provider.ID == id {
			return provider, nil
		}
	}
	return nil, providerRepo.ErrProviderNotFound
}

func (f *fakeProviderRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	_, ok := f.providers[slug]
	return ok, nil
}

func (f *fakeProviderRepo) ListServices(_ context.Context, providerID int64) ([]*domain.Service, error) {
	return f.services[providerID], nil
}

type fakeMailService struct {
	welcomes []string
}

func (f *fakeMailService) SendRegistrationSuccess(_ context.Context, email string) error {
	f.welcomes = append(f.welcomes, email)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Anna Petrova", "anna-petrova"},
		{"extra spaces", "  Anna   Petrova  ", "anna-petrova"},
		{"punctuation", "Dr. Anna Petrova, MD", "dr-anna-petrova-md"},
		{"digits kept", "Studio 54", "studio-54"},
		{"already slug", "anna-petrova", "anna-petrova"},
		{"empty", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.input))
		})
	}
}

func TestRegister_GeneratesSlug(t *testing.T) {
	repo := newFakeProviderRepo()
	mail := &fakeMailService{}
	svc := NewService(repo, mail, noopLogger{})

	resp, err := svc.Register(context.Background(), &models.RegisterProviderRequest{
		DisplayName: "Anna Petrova",
		Email:       "anna@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "anna-petrova", resp.Slug)
	assert.Equal(t, []string{"anna@example.com"}, mail.welcomes)
}

func TestRegister_DisambiguatesSlugCollisions(t *testing.T) {
	repo := newFakeProviderRepo()
	svc := NewService(repo, &fakeMailService{}, noopLogger{})

	first, err := svc.Register(context.Background(), &models.RegisterProviderRequest{
		DisplayName: "Anna Petrova",
		Email:       "anna@example.com",
	})
	require.NoError(t, err)

	second, err := svc.Register(context.Background(), &models.RegisterProviderRequest{
		DisplayName: "Anna Petrova",
		Email:       "anna2@example.com",
	})
	require.NoError(t, err)

	third, err := svc.Register(context.Background(), &models.RegisterProviderRequest{
		DisplayName: "Anna Petrova",
		Email:       "anna3@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "anna-petrova", first.Slug)
	assert.Equal(t, "anna-petrova-2", second.Slug)
	assert.Equal(t, "anna-petrova-3", third.Slug)
}

func TestRegister_InvalidInput(t *testing.T) {
	svc := NewService(newFakeProviderRepo(), &fakeMailService{}, noopLogger{})

	_, err := svc.Register(context.Background(), &models.RegisterProviderRequest{
		DisplayName: "",
		Email:       "anna@example.com",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(context.Background(), &models.RegisterProviderRequest{
		DisplayName: "Anna",
		Email:       "not-an-email",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListServices(t *testing.T) {
	repo := newFakeProviderRepo()
	repo.providers["anna-petrova"] = &domain.Provider{ID: 1, Slug: "anna-petrova"}
	repo.services[1] = []*domain.Service{
		{ID: 7, ProviderID: 1, Name: "Consultation", DurationMinutes: 60, Price: 50},
	}
	svc := NewService(repo, &fakeMailService{}, noopLogger{})

	resp, err := svc.ListServices(context.Background(), "anna-petrova")

	require.NoError(t, err)
	assert.Equal(t, "anna-petrova", resp.ProviderSlug)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Consultation", resp.Services[0].Name)
}

func TestListServices_ProviderNotFound(t *testing.T) {
	svc := NewService(newFakeProviderRepo(), &fakeMailService{}, noopLogger{})

	_, err := svc.ListServices(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrProviderNotFound)
}
