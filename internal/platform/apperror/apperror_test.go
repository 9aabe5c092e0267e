package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsWrapsUnknownErrorsAsInternal(t *testing.T) {
	e := As(errors.New("boom"))
	require.NotNil(t, e)
	assert.Equal(t, KindInternal, e.Kind)

	wrapped := fmt.Errorf("context: %w", NotFoundf("ticket not found"))
	assert.Equal(t, KindNotFound, As(wrapped).Kind)
}

func TestFromDBMapping(t *testing.T) {
	assert.Equal(t, KindNotFound, As(FromDB(sql.ErrNoRows, "item not found")).Kind)
	assert.Equal(t, "item not found", As(FromDB(sql.ErrNoRows, "item not found")).Message)

	dup := &pq.Error{Code: "23505"}
	assert.Equal(t, KindConflict, As(FromDB(dup, "")).Kind)

	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, KindValidation, As(FromDB(fk, "")).Kind)

	assert.Equal(t, KindInternal, As(FromDB(errors.New("connection reset"), "")).Kind)
}

func TestErrorStringIncludesKind(t *testing.T) {
	e := Conflictf("sale already refunded")
	assert.Contains(t, e.Error(), "sale already refunded")
}
