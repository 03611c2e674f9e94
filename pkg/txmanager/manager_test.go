package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	opts     *sql.TxOptions
	begun    int
	beginErr error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	b.begun++
	b.opts = opts
	return b.tx, nil
}

func TestTransactionManager_CommitsOnSuccess(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, b.tx.committed)
	assert.False(t, b.tx.rolledBack)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)
	sentinel := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.True(t, b.tx.rolledBack)
	assert.False(t, b.tx.committed)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			panic("unexpected")
		})
	})
	assert.True(t, b.tx.rolledBack)
}

func TestTransactionManager_NestedJoinsOuter(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, b.begun)
}

func TestTransactionManager_BeginAndCommitErrors(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{beginErr: errors.New("conn refused")})
	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	b := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization")}}
	err = NewTransactionManager(b).Do(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommit)
}

func TestTransactionManager_DoReadOnly(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	err := NewTransactionManager(b).DoReadOnly(context.Background(), func(ctx context.Context) error { return nil })

	require.NoError(t, err)
	require.NotNil(t, b.opts)
	assert.True(t, b.opts.ReadOnly)
}
