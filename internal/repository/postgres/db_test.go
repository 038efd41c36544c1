package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"paygate/internal/repository"
)

func TestTranslateInsertError(t *testing.T) {
	t.Parallel()

	dup := &pq.Error{Code: uniqueViolation, Message: `duplicate key value violates unique constraint "payments_pkey"`}
	assert.ErrorIs(t, translateInsertError(dup), repository.ErrAlreadyExists)
	assert.ErrorIs(t, translateInsertError(fmt.Errorf("insert: %w", dup)), repository.ErrAlreadyExists)

	check := &pq.Error{Code: "23514", Message: "violates check constraint"}
	assert.Same(t, check, translateInsertError(check))

	other := errors.New("connection reset")
	assert.Equal(t, other, translateInsertError(other))
	assert.NoError(t, translateInsertError(nil))
}

func TestNullString(t *testing.T) {
	t.Parallel()

	assert.False(t, nullString("").Valid)
	assert.Equal(t, "user@bank", nullString("user@bank").String)
	assert.True(t, nullString("user@bank").Valid)
}

func TestSchemaEmbedded(t *testing.T) {
	t.Parallel()

	for _, table := range []string{"merchants", "orders", "payments"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestSchemaStoresUnboundedVPA(t *testing.T) {
	t.Parallel()

	assert.Regexp(t, `(?m)^\s+vpa\s+TEXT,$`, schema)
	assert.Contains(t, schema, "ALTER TABLE payments ALTER COLUMN vpa TYPE TEXT;")
	assert.NotRegexp(t, `(?m)^\s+vpa\s+VARCHAR`, schema)
}
