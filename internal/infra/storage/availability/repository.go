package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/dbmetrics"
	"github.com/clockly/booking-service/pkg/psqlbuilder"
	"github.com/clockly/booking-service/pkg/types"
)

var windowColumns = []string{
	"id",
	"provider_id",
	"window_date",
	"start_time",
	"end_time",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с окнами доступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByProviderAndDate получает активные окна провайдера на дату
// Сортировка по времени начала - порядок окон определяет порядок генерации слотов
func (r *Repository) GetActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"window_date": date,
			"is_active":   true,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByProviderAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows)
}

// FindCovering находит активное окно, полностью содержащее [start, end)
// на указанную дату: start_time <= start И end_time >= end
//
// Внутри транзакции строка окна блокируется (FOR UPDATE) - вместе с блокировкой
// бронирований это сериализует конкурентные аллокации на (провайдер, дата)
func (r *Repository) FindCovering(ctx context.Context, providerID int64, date time.Time, start, end types.TimeString) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(windowColumns...).
		From("availability_windows").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"window_date": date,
			"is_active":   true,
		}).
		Where(squirrel.LtOrEq{"start_time": start}).
		Where(squirrel.GtOrEq{"end_time": end}).
		OrderBy("start_time ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindCovering - build select query: %v", ErrBuildQuery, err)
	}

	window, err := scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindCovering - scan window: %w", ErrScanRow, err)
	}

	return window, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var window domain.AvailabilityWindow
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&window.ID,
		&window.ProviderID,
		&window.Date,
		&window.StartTime,
		&window.EndTime,
		&window.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}

func scanWindows(rows *sql.Rows) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)

	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanWindows - scan row: %w", ErrScanRow, err)
		}
		windows = append(windows, window)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanWindows - rows error: %w", ErrScanRow, err)
	}

	return windows, nil
}
