package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/shared"
)

func TestNewStockBalance(t *testing.T) {
	b, err := NewStockBalance(uuid.New(), uuid.New(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.Quantity)

	_, err = NewStockBalance(uuid.New(), uuid.New(), 0)
	assert.Error(t, err)

	_, err = NewStockBalance(uuid.New(), uuid.New(), -1)
	assert.Error(t, err)
}

func TestStockBalance_Decrease(t *testing.T) {
	b, err := NewStockBalance(uuid.New(), uuid.New(), 10)
	require.NoError(t, err)

	require.NoError(t, b.Decrease(4))
	assert.Equal(t, int64(6), b.Quantity)

	require.NoError(t, b.Decrease(6))
	assert.Equal(t, int64(0), b.Quantity)
	assert.True(t, b.IsDepleted())
}

func TestStockBalance_DecreaseInsufficient(t *testing.T) {
	b, err := NewStockBalance(uuid.New(), uuid.New(), 3)
	require.NoError(t, err)

	err = b.Decrease(5)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, int64(3), domainErr.Details["available"])
	assert.Equal(t, int64(5), domainErr.Details["requested"])

	// the failed decrease must not touch the balance
	assert.Equal(t, int64(3), b.Quantity)
}

func TestStockBalance_Increase(t *testing.T) {
	b, err := NewStockBalance(uuid.New(), uuid.New(), 1)
	require.NoError(t, err)

	require.NoError(t, b.Increase(9))
	assert.Equal(t, int64(10), b.Quantity)

	assert.Error(t, b.Increase(0))
	assert.Error(t, b.Increase(-2))
	assert.Equal(t, int64(10), b.Quantity)
}
