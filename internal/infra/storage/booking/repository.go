package booking

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

// bookingColumns полный список колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"provider_id",
	"service_id",
	"window_id",
	"booking_date",
	"start_time",
	"end_time",
	"customer_name",
	"customer_email",
	"customer_phone",
	"note",
	"status",
	"service_name",
	"service_price",
	"email_sent",
	"was_reminded",
	"end_datetime",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её -
// аллокация слота всегда выполняется внутри сериализуемой транзакции,
// чтобы проверка пересечений и вставка были атомарны
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"provider_id",
			"service_id",
			"window_id",
			"booking_date",
			"start_time",
			"end_time",
			"customer_name",
			"customer_email",
			"customer_phone",
			"note",
			"status",
			"service_name",
			"service_price",
			"email_sent",
			"was_reminded",
			"end_datetime",
		).
		Values(
			booking.ProviderID,
			booking.ServiceID,
			booking.WindowID,
			booking.Date,
			booking.StartTime,
			booking.EndTime,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Note,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.EmailSent,
			booking.WasReminded,
			booking.EndDatetime,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) - используется
// verification gate при подтверждении и reschedule при переносе
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByProviderWithFilter получает бронирования провайдера с гибкой фильтрацией
// Поддерживает фильтрацию по дате, статусу и включению отменённых бронирований
//
// Если вызов происходит внутри транзакции и задан фильтр по дате,
// выбранные строки блокируются (FOR UPDATE) - так аллокатор сериализует
// конкурентные попытки бронирования на одну пару (провайдер, дата)
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// UpdateSchedule переносит бронирование на другой слот
// Все поля расписания обновляются вместе: окно, дата, начало, пересчитанный конец
func (r *Repository) UpdateSchedule(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("window_id", booking.WindowID).
		Set("booking_date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("end_datetime", booking.EndDatetime).
		Set("was_reminded", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateSchedule", query, args)
}

// MarkReminded отмечает бронирование как получившее напоминание
func (r *Repository) MarkReminded(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("was_reminded", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"was_reminded": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminded - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "MarkReminded", query, args)
}

// ListDueReminders возвращает активные бронирования, начинающиеся в [from, to)
// и ещё не получившие напоминание
// Граница окна полуоткрытая - та же семантика, что у domain.Overlaps
func (r *Repository) ListDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"was_reminded": false}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		Where(squirrel.Expr("(booking_date + start_time) >= ?", from)).
		Where(squirrel.Expr("(booking_date + start_time) < ?", to)).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// DeletePendingCreatedBefore удаляет pending-бронирования, созданные раньше cutoff
// Используется джобой очистки неподтверждённых бронирований
func (r *Repository) DeletePendingCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"status": string(domain.StatusPending)}).
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeletePendingCreatedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execCounting(ctx, executor, "DeletePendingCreatedBefore", query, args)
}

// DeleteEndedBefore удаляет бронирования, завершившиеся раньше cutoff, независимо от статуса
// Используется retention-джобой
func (r *Repository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Lt{"end_datetime": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execCounting(ctx, executor, "DeleteEndedBefore", query, args)
}

// execExpectingRow выполняет запрос и проверяет, что была затронута хотя бы одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// execCounting выполняет запрос и возвращает число затронутых строк
func (r *Repository) execCounting(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	return rowsAffected, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в модель бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.WindowID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Note,
		&booking.Status,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.EmailSent,
		&booking.WasReminded,
		&booking.EndDatetime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
