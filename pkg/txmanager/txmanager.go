package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/clockly/booking-service/pkg/dbmetrics"
)

const (
	// lockTimeout ограничение ожидания блокировки строк внутри транзакции
	// Транзакция, не получившая блокировку за это время, завершается ErrLockTimeout
	lockTimeout = "3s"

	// maxSerializationRetries количество повторов при конфликте сериализации (SQLSTATE 40001)
	maxSerializationRetries = 3
)

// Коды ошибок PostgreSQL
const (
	pqLockNotAvailable     = "55P03"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

var (
	// ErrLockTimeout возвращается, когда транзакция не смогла получить блокировку за отведённое время
	// Вызывающая сторона может повторить запрос с backoff
	ErrLockTimeout = errors.New("txmanager: lock wait timeout, retry later")

	// ErrBusy возвращается после исчерпания повторов сериализуемой транзакции
	ErrBusy = errors.New("txmanager: transaction conflict, retry later")

	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx возвращается при ошибке коммита транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner интерфейс для начала транзакций
// Реализуется *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций над БД с метриками
// Кладет активную транзакцию в контекст; репозитории достают её через dbmetrics.GetExecutor
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции Read Committed
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с пессимистичными блокировками
// Конфликты сериализации повторяются до maxSerializationRetries раз,
// после чего возвращается ErrBusy
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= maxSerializationRetries; attempt++ {
		err = m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrBusy, err)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	if !opts.ReadOnly {
		// Ограничиваем ожидание блокировок, чтобы конкурентные
		// аллокации не зависали друг на друге
		if _, err := tx.ExecContext(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: set lock_timeout: %v", ErrBeginTx, err)
		}
	}

	if err := fn(dbmetrics.WithExecutor(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return mapPQError(err)
	}

	if err := tx.Commit(); err != nil {
		// Двойной %w: ошибка драйвера должна остаться в цепочке,
		// иначе 40001 на коммите (где SSI и сообщает о write-skew)
		// не распознается как повторяемый конфликт
		return mapPQError(fmt.Errorf("%w: %w", ErrCommitTx, err))
	}

	return nil
}

// mapPQError конвертирует коды ошибок PostgreSQL в сентинелы пакета
func mapPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqLockNotAvailable, pqDeadlockDetected:
			return fmt.Errorf("%w: %w", ErrLockTimeout, err)
		}
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqSerializationFailure
}
