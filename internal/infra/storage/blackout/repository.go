package blackout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/dbmetrics"
	"github.com/clockly/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с окнами недоступности (перерывами)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон недоступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderAndDate получает все перерывы провайдера на дату
func (r *Repository) GetByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.BlackoutWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"window_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
		"updated_at",
	).
		From("blackout_windows").
		Where(squirrel.Eq{
			"provider_id": providerID,
			"window_date": date,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.BlackoutWindow, 0)
	for rows.Next() {
		var blackout domain.BlackoutWindow
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&blackout.ID,
			&blackout.ProviderID,
			&blackout.Date,
			&blackout.StartTime,
			&blackout.EndTime,
			&blackout.Reason,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProviderAndDate - scan row: %w", ErrScanRow, err)
		}

		blackout.CreatedAt = createdAt.Time
		blackout.UpdatedAt = updatedAt.Time
		blackouts = append(blackouts, &blackout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndDate - rows error: %w", ErrScanRow, err)
	}

	return blackouts, nil
}
