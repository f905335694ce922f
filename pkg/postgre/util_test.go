package postgres

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIDs(t *testing.T) {
	assert.NoError(t, ValidateIDs(nil))
	assert.NoError(t, ValidateIDs([]int64{1, 2, 3}))

	err := ValidateIDs([]int64{4, -1})
	assert.ErrorIs(t, err, ErrInvalidIDs)
	assert.Contains(t, err.Error(), "index 1")
}

func TestInt64Array(t *testing.T) {
	v, ok := Int64Array([]int64{1, 2}).(driver.Valuer)
	require.True(t, ok)

	got, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, "{1,2}", got)
}
