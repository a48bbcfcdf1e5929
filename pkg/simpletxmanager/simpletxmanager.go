package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/clockly/booking-service/pkg/dbmetrics"
	"github.com/clockly/booking-service/pkg/txmanager"
)

// TransactionManager менеджер транзакций над чистым *sql.DB (без метрик)
// Используется, когда метрики выключены в конфигурации
type TransactionManager struct {
	inner *txmanager.TransactionManager
}

// NewTransactionManager создает менеджер транзакций над *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{
		inner: txmanager.NewTransactionManager(&plainBeginner{db: db}),
	}
}

// Do выполняет fn в транзакции Read Committed
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.Do(ctx, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.DoSerializable(ctx, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.inner.DoReadOnly(ctx, fn)
}

// plainBeginner адаптирует *sql.DB под txmanager.TxBeginner
type plainBeginner struct {
	db *sql.DB
}

func (b *plainBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.db.BeginTx(ctx, opts)
}
