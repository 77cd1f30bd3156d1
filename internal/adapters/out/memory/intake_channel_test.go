package memory_test

import (
	"testing"

	"storehouse/internal/adapters/out/memory"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeChannel(t *testing.T) {
	ch := memory.NewIntakeChannel()
	standard1 := restoredOrder(t, 5000, 10, epoch, order.Reserved)
	premium := restoredOrder(t, 200, 5, epoch, order.Reserved)
	standard2 := restoredOrder(t, 5001, 30, epoch, order.Reserved)

	require.NoError(t, ch.Send(t.Context(), standard1, ports.PriorityFor(standard1.CustomerID())))
	require.NoError(t, ch.Send(t.Context(), premium, ports.PriorityFor(premium.CustomerID())))
	require.NoError(t, ch.Send(t.Context(), standard2, ports.PriorityFor(standard2.CustomerID())))

	customers := func(msgs []ports.IntakeMessage) []user.ID {
		return lo.Map(msgs, func(m ports.IntakeMessage, _ int) user.ID { return m.CustomerID })
	}

	t.Run("browse is priority first then FIFO and does not consume", func(t *testing.T) {
		browsed, err := ch.Browse(t.Context(), 10)

		require.NoError(t, err)
		assert.Equal(t, []user.ID{200, 5000, 5001}, customers(browsed))
		assert.Equal(t, ports.PriorityHigh, browsed[0].Priority)
		assert.Equal(t, 10, browsed[1].Quantity)
		assert.Equal(t, 3, ch.Len())
	})

	t.Run("consume removes the head", func(t *testing.T) {
		consumed, err := ch.Consume(t.Context(), 2)

		require.NoError(t, err)
		assert.Equal(t, []user.ID{200, 5000}, customers(consumed))
		assert.Equal(t, 1, ch.Len())

		rest, err := ch.Consume(t.Context(), 5)
		require.NoError(t, err)
		assert.Equal(t, []user.ID{5001}, customers(rest))
	})

	t.Run("transient orders are refused", func(t *testing.T) {
		o := order.NewOrder(5000, order.NewItem(1, premium.TotalPrice()))

		assert.ErrorIs(t, ch.Send(t.Context(), o, ports.PriorityLow), ports.ErrOrderIsNotPersisted)
	})
}
