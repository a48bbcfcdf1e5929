package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/dbmetrics"
	"github.com/clockly/booking-service/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

var providerColumns = []string{
	"id",
	"slug",
	"display_name",
	"email",
	"created_at",
	"updated_at",
}

var serviceColumns = []string{
	"id",
	"provider_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с провайдерами и их услугами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория провайдеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает провайдера с уже сгенерированным slug
// Нарушение уникальности slug возвращается как ErrDuplicateSlug -
// генератор slug повторяет попытку со следующим числовым суффиксом
func (r *Repository) Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("providers").
		Columns("slug", "display_name", "email").
		Values(provider.Slug, provider.DisplayName, provider.Email).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&provider.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	provider.CreatedAt = createdAt.Time
	provider.UpdatedAt = updatedAt.Time

	return provider, nil
}

// GetBySlug получает провайдера по публичному slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Provider, error) {
	return r.getProvider(ctx, squirrel.Eq{"slug": slug}, "GetBySlug")
}

// GetByID получает провайдера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return r.getProvider(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// SlugExists проверяет занятость slug
// Используется генератором slug для подбора числового суффикса
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("providers").
		Where(squirrel.Eq{"slug": slug}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: SlugExists - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// GetService получает услугу провайдера по ID с проверкой принадлежности
func (r *Repository) GetService(ctx context.Context, providerID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{
			"id":          serviceID,
			"provider_id": providerID,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	return service, nil
}

// ListServices получает все услуги провайдера
func (r *Repository) ListServices(ctx context.Context, providerID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %w", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %w", ErrScanRow, err)
	}

	return services, nil
}

func (r *Repository) getProvider(ctx context.Context, where squirrel.Eq, method string) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(providerColumns...).
		From("providers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var provider domain.Provider
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&provider.ID,
		&provider.Slug,
		&provider.DisplayName,
		&provider.Email,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan provider: %w", ErrScanRow, method, err)
	}

	provider.CreatedAt = createdAt.Time
	provider.UpdatedAt = updatedAt.Time

	return &provider, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.ProviderID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.Price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
