package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM appointments"))
	assert.Equal(t, "update", operation("  UPDATE availabilities SET is_booked = $1"))
	assert.Equal(t, "commit", operation("commit"))
	assert.Equal(t, "insert", operation("INSERT\nINTO appointments"))
}

func TestGetExecutor(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &Tx{parent: db}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}
