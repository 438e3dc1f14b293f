package orderbookv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a test order
func createTestOrder(id int64, side Side, price, qty int64) Order {
	return NewOrder(id, side, price, qty, 1)
}

func TestNewLevel(t *testing.T) {
	level := NewLevel(100)

	assert.NotNil(t, level)
	assert.Equal(t, int64(100), level.Price)
	assert.Equal(t, int64(0), level.TotalQty)
	assert.Empty(t, level.Orders)
	assert.True(t, level.IsEmpty())
}

func TestLevel_Enqueue(t *testing.T) {
	t.Run("Enqueue valid order", func(t *testing.T) {
		level := NewLevel(100)
		order := createTestOrder(1, SideBuy, 100, 10)

		err := level.Enqueue(order)

		require.NoError(t, err)
		assert.Equal(t, 1, level.OrderCount())
		assert.Equal(t, int64(10), level.TotalQty)
		assert.False(t, level.IsEmpty())
	})

	t.Run("Enqueue order with mismatched price", func(t *testing.T) {
		level := NewLevel(100)
		order := createTestOrder(1, SideBuy, 99, 10)

		err := level.Enqueue(order)
		assert.Error(t, err)
		assert.True(t, level.IsEmpty())
	})

	t.Run("Enqueue order with zero quantity", func(t *testing.T) {
		level := NewLevel(100)
		order := createTestOrder(1, SideBuy, 100, 0)

		err := level.Enqueue(order)
		assert.ErrorIs(t, err, ErrInvalidQty)
	})

	t.Run("Enqueue multiple orders aggregates quantity", func(t *testing.T) {
		level := NewLevel(100)
		require.NoError(t, level.Enqueue(createTestOrder(1, SideBuy, 100, 10)))
		require.NoError(t, level.Enqueue(createTestOrder(2, SideBuy, 100, 5)))

		assert.Equal(t, 2, level.OrderCount())
		assert.Equal(t, int64(15), level.TotalQty)
	})
}

func TestLevel_Front(t *testing.T) {
	level := NewLevel(100)

	_, ok := level.Front()
	assert.False(t, ok)

	require.NoError(t, level.Enqueue(createTestOrder(1, SideBuy, 100, 10)))
	require.NoError(t, level.Enqueue(createTestOrder(2, SideBuy, 100, 5)))

	front, ok := level.Front()
	require.True(t, ok)
	assert.Equal(t, int64(1), front.ID)
	// Front does not remove
	assert.Equal(t, 2, level.OrderCount())
}

func TestLevel_PopFront(t *testing.T) {
	t.Run("Pop from empty level", func(t *testing.T) {
		level := NewLevel(100)
		_, err := level.PopFront()
		assert.ErrorIs(t, err, ErrEmptyLevel)
	})

	t.Run("Pop preserves arrival order", func(t *testing.T) {
		level := NewLevel(100)
		require.NoError(t, level.Enqueue(createTestOrder(1, SideSell, 100, 10)))
		require.NoError(t, level.Enqueue(createTestOrder(2, SideSell, 100, 7)))
		require.NoError(t, level.Enqueue(createTestOrder(3, SideSell, 100, 3)))

		first, err := level.PopFront()
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(10), level.TotalQty)

		second, err := level.PopFront()
		require.NoError(t, err)
		assert.Equal(t, int64(2), second.ID)
		assert.Equal(t, int64(3), level.TotalQty)

		third, err := level.PopFront()
		require.NoError(t, err)
		assert.Equal(t, int64(3), third.ID)
		assert.True(t, level.IsEmpty())
		assert.Equal(t, int64(0), level.TotalQty)
	})
}

func TestOrder_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		order       Order
		expectedErr error
	}{
		{
			name:        "valid buy order",
			order:       NewOrder(1, SideBuy, 100, 10, 1),
			expectedErr: nil,
		},
		{
			name:        "valid sell order",
			order:       NewOrder(2, SideSell, 100, 10, 1),
			expectedErr: nil,
		},
		{
			name:        "unknown side",
			order:       NewOrder(3, Side("HOLD"), 100, 10, 1),
			expectedErr: ErrInvalidSide,
		},
		{
			name:        "zero price",
			order:       NewOrder(4, SideBuy, 0, 10, 1),
			expectedErr: ErrInvalidPrice,
		},
		{
			name:        "negative price",
			order:       NewOrder(5, SideBuy, -5, 10, 1),
			expectedErr: ErrInvalidPrice,
		},
		{
			name:        "zero quantity",
			order:       NewOrder(6, SideSell, 100, 0, 1),
			expectedErr: ErrInvalidQty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.order.Validate()
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestSide_Opposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
}
