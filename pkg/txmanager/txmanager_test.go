package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockly/booking-service/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr   error
	committed   int
	rolledBack  int
	execErr     error
	execQueries []string
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	t.execQueries = append(t.execQueries, query)
	return nil, t.execErr
}

func (t *fakeTx) Commit() error {
	t.committed++
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack++
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	begun    int
	beginErr error
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestDoSerializable_Success(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, beginner.tx.committed)
	assert.Equal(t, 0, beginner.tx.rolledBack)
}

func TestDoSerializable_SerializationFailureAtCommitRetriesThenBusy(t *testing.T) {
	// 40001 на коммите: именно там SSI сообщает о write-skew
	// между конкурентными аллокациями
	beginner := &fakeBeginner{tx: &fakeTx{
		commitErr: &pq.Error{Code: pqSerializationFailure, Message: "could not serialize access"},
	}}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, maxSerializationRetries+1, beginner.begun)
}

func TestDoSerializable_SerializationFailureFromFnRetries(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	attempts := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			// Репозитории оборачивают ошибку драйвера через %w,
			// она остаётся достижимой для errors.As
			return fmt.Errorf("booking: failed to execute query: Create - execute insert: %w",
				&pq.Error{Code: pqSerializationFailure})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, beginner.tx.rolledBack)
	assert.Equal(t, 1, beginner.tx.committed)
}

func TestDoSerializable_LockTimeoutMapped(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("booking: failed to execute query: GetByProviderWithFilter - execute query: %w",
			&pq.Error{Code: pqLockNotAvailable})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.Equal(t, 1, beginner.begun, "lock timeout is surfaced to the caller, not retried here")
	assert.Equal(t, 1, beginner.tx.rolledBack)
}

func TestDoSerializable_DeadlockMappedToLockTimeout(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("wrapped: %w", &pq.Error{Code: pqDeadlockDetected})
	})

	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestDoSerializable_PlainErrorNotRetried(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	manager := NewTransactionManager(beginner)

	boom := errors.New("boom")
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, beginner.begun)
	assert.Equal(t, 1, beginner.tx.rolledBack)
	assert.Equal(t, 0, beginner.tx.committed)
}

func TestDoSerializable_CommitErrorKeepsDriverErrorInChain(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{
		commitErr: &pq.Error{Code: pqLockNotAvailable},
	}}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.ErrorIs(t, err, ErrLockTimeout)

	var pqErr *pq.Error
	assert.ErrorAs(t, err, &pqErr)
}

func TestDo_SetsLockTimeout(t *testing.T) {
	tx := &fakeTx{}
	manager := NewTransactionManager(&fakeBeginner{tx: tx})

	err := manager.Do(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.NoError(t, err)
	require.Len(t, tx.execQueries, 1)
	assert.Contains(t, tx.execQueries[0], "lock_timeout")
}

func TestDo_BeginError(t *testing.T) {
	manager := NewTransactionManager(&fakeBeginner{beginErr: errors.New("down")})

	err := manager.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})

	assert.ErrorIs(t, err, ErrBeginTx)
}
