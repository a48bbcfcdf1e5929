package token

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/clockly/booking-service/internal/domain"
	"github.com/clockly/booking-service/pkg/dbmetrics"
	"github.com/clockly/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с токенами подтверждения бронирований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает токен подтверждения для бронирования
func (r *Repository) Create(ctx context.Context, t *domain.VerificationToken) (*domain.VerificationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("verification_tokens").
		Columns("booking_id", "email", "token", "verified").
		Values(t.BookingID, t.Email, t.Token, t.Verified).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time

	return t, nil
}

// GetByToken получает токен по его значению
// Внутри транзакции строка блокируется (FOR UPDATE) - redeem двух
// одинаковых ссылок не должен дважды отправить подтверждение
func (r *Repository) GetByToken(ctx context.Context, value uuid.UUID) (*domain.VerificationToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"booking_id",
		"email",
		"token",
		"verified",
		"created_at",
	).
		From("verification_tokens").
		Where(squirrel.Eq{"token": value})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.VerificationToken
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.BookingID,
		&t.Email,
		&t.Token,
		&t.Verified,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan token: %w", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time

	return &t, nil
}

// MarkVerified помечает токен использованным (одноразовость)
func (r *Repository) MarkVerified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("verification_tokens").
		Set("verified", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkVerified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkVerified - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkVerified - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTokenNotFound
	}

	return nil
}

// DeleteCreatedBefore удаляет токены, созданные раньше cutoff
// Используется джобой очистки просроченных токенов
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("verification_tokens").
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCreatedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCreatedBefore - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCreatedBefore - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
