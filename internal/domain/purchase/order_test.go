package purchase

import (
	"errors"
	"testing"

	"github.com/erp/projectlink/internal/domain/analytic"
	"github.com/erp/projectlink/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("P00001", nil)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)
	assert.Equal(t, OrderStateDraft, o.State)
	assert.Equal(t, o.CreatedAt, o.DateOrder)

	_, err := NewOrder("", nil)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}

func TestOrder_AddLine(t *testing.T) {
	o := newTestOrder(t)
	account := uuid.New()

	line, err := o.AddLine("Bricks", decimal.NewFromInt(3), decimal.RequireFromString("12.50"), analytic.Single(account))
	require.NoError(t, err)
	assert.Equal(t, o.ID, line.OrderID)
	assert.True(t, line.PriceSubtotal.Equal(decimal.RequireFromString("37.5")))
	assert.True(t, line.AnalyticDistribution.Has(account))
	assert.True(t, o.AmountTotal().Equal(decimal.RequireFromString("37.5")))

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := o.AddLine("Bricks", decimal.Zero, decimal.NewFromInt(1), nil)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects bad distribution", func(t *testing.T) {
		_, err := o.AddLine("Bricks", decimal.NewFromInt(1), decimal.NewFromInt(1),
			analytic.Distribution{"not-an-id": decimal.NewFromInt(100)})
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestOrder_Transitions(t *testing.T) {
	t.Run("confirm requires lines", func(t *testing.T) {
		o := newTestOrder(t)
		assert.True(t, errors.Is(o.Confirm(), shared.ErrInvalidInput))
	})

	t.Run("draft to purchase to cancel", func(t *testing.T) {
		o := newTestOrder(t)
		_, err := o.AddLine("Bricks", decimal.NewFromInt(1), decimal.NewFromInt(10), nil)
		require.NoError(t, err)

		require.NoError(t, o.Confirm())
		assert.Equal(t, OrderStatePurchase, o.State)
		assert.True(t, errors.Is(o.Confirm(), shared.ErrInvalidState))

		_, err = o.AddLine("More", decimal.NewFromInt(1), decimal.NewFromInt(1), nil)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))

		require.NoError(t, o.Cancel())
		assert.Equal(t, OrderStateCancel, o.State)
		assert.True(t, errors.Is(o.Cancel(), shared.ErrInvalidState))
	})
}
