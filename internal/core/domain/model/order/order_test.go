package order_test

import (
	"testing"
	"time"

	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newInitializedOrder(t *testing.T, items ...order.Item) *order.Order {
	t.Helper()
	o := order.NewOrder(user.ID(5000), items...)
	o.Initialize()
	o.CalculateTotalPrice()
	return o
}

func TestNewOrder(t *testing.T) {
	o := order.NewOrder(user.ID(200), order.NewItem(3, price("1.20")))

	assert.False(t, o.IsPersisted())
	assert.Equal(t, user.ID(200), o.CustomerID())
	assert.Equal(t, order.Unknown, o.Status())
	assert.Empty(t, o.History())
	assert.WithinDuration(t, time.Now(), o.CreatedAt(), time.Second)
	assert.Equal(t, time.UTC, o.CreatedAt().Location())
}

func TestOrder_Initialize(t *testing.T) {
	t.Run("should reserve with a single history entry", func(t *testing.T) {
		o := order.NewOrder(user.ID(200), order.NewItem(1, price("0")))

		o.Initialize()

		assert.Equal(t, order.Reserved, o.Status())
		require.Len(t, o.History(), 1)
		assert.Equal(t, order.Reserved, o.History()[0].Status())
	})

	t.Run("should clear previous history", func(t *testing.T) {
		o := newInitializedOrder(t, order.NewItem(1, price("0")))
		require.NoError(t, o.AddHistoryEntry(order.Cancelled))

		o.Initialize()

		assert.Equal(t, order.Reserved, o.Status())
		assert.Len(t, o.History(), 1)
	})
}

func TestOrder_AddHistoryEntry(t *testing.T) {
	t.Run("from RESERVED appends exactly one entry", func(t *testing.T) {
		for _, next := range []order.Status{order.Pending, order.Delivered, order.Cancelled} {
			o := newInitializedOrder(t, order.NewItem(1, price("1")))

			require.NoError(t, o.AddHistoryEntry(next))

			history := o.History()
			require.Len(t, history, 2)
			assert.Equal(t, next, history[1].Status())
			assert.Equal(t, next, o.Status())
			assert.False(t, history[1].CreatedAt().Before(history[0].CreatedAt()))
		}
	})

	t.Run("same status fails and leaves the order unchanged", func(t *testing.T) {
		o := newInitializedOrder(t, order.NewItem(1, price("1")))

		err := o.AddHistoryEntry(order.Reserved)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Len(t, o.History(), 1)
	})

	t.Run("terminal orders reject every status", func(t *testing.T) {
		for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
			o := newInitializedOrder(t, order.NewItem(1, price("1")))
			require.NoError(t, o.AddHistoryEntry(terminal))

			for _, next := range allStatuses {
				require.ErrorIs(t, o.AddHistoryEntry(next), order.ErrIllegalTransition)
			}
			assert.Len(t, o.History(), 2)
		}
	})

	t.Run("pending orders are locked", func(t *testing.T) {
		o := newInitializedOrder(t, order.NewItem(1, price("1")))
		require.NoError(t, o.AddHistoryEntry(order.Pending))

		err := o.AddHistoryEntry(order.Delivered)

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Contains(t, err.Error(), "order is PENDING")
	})
}

func TestOrder_CalculateTotalPrice(t *testing.T) {
	t.Run("sums to an exact decimal", func(t *testing.T) {
		o := order.NewOrder(user.ID(1),
			order.NewItem(1, price("1.10")),
			order.NewItem(2, price("2.20")),
			order.NewItem(1, price("1.20")),
		)

		first := o.CalculateTotalPrice()
		second := o.CalculateTotalPrice()

		assert.True(t, first.Equal(price("4.50")), first.String())
		assert.True(t, second.Equal(first))
		assert.Equal(t, "4.5", o.TotalPrice().String())
	})

	t.Run("is not refreshed by AddItem", func(t *testing.T) {
		o := order.NewOrder(user.ID(1), order.NewItem(1, price("2.00")))
		o.CalculateTotalPrice()

		o.AddItem(order.NewItem(1, price("3.00")))

		assert.True(t, o.TotalPrice().Equal(price("2")))
		assert.True(t, o.CalculateTotalPrice().Equal(price("5")))
	})

	t.Run("defaults to zero prices", func(t *testing.T) {
		o := order.NewOrder(user.ID(1), order.Item{Quantity: 4})

		assert.True(t, o.CalculateTotalPrice().IsZero())
	})
}

func TestOrder_CalculateTotalQuantity(t *testing.T) {
	o := order.NewOrder(user.ID(1), order.NewItem(3, price("0")), order.NewItem(7, price("0")))

	assert.Equal(t, 10, o.CalculateTotalQuantity())
}

func TestOrder_Validate(t *testing.T) {
	tests := []struct {
		name  string
		build func() *order.Order
		field string
	}{
		{
			name: "missing customer",
			build: func() *order.Order {
				o := order.NewOrder(0, order.NewItem(1, price("1")))
				o.Initialize()
				o.CalculateTotalPrice()
				return o
			},
			field: "customerId",
		},
		{
			name: "no items",
			build: func() *order.Order {
				o := order.NewOrder(10)
				o.Initialize()
				o.CalculateTotalPrice()
				return o
			},
			field: "items",
		},
		{
			name: "zero quantity",
			build: func() *order.Order {
				o := order.NewOrder(10, order.NewItem(1, price("1")), order.NewItem(0, price("1")))
				o.Initialize()
				o.CalculateTotalPrice()
				return o
			},
			field: "items[1].quantity",
		},
		{
			name: "negative price",
			build: func() *order.Order {
				o := order.NewOrder(10, order.NewItem(1, price("-0.01")))
				o.Initialize()
				o.CalculateTotalPrice()
				return o
			},
			field: "items[0].price",
		},
		{
			name: "not initialized",
			build: func() *order.Order {
				o := order.NewOrder(10, order.NewItem(1, price("1")))
				o.CalculateTotalPrice()
				return o
			},
			field: "history",
		},
		{
			name: "total never calculated",
			build: func() *order.Order {
				o := order.NewOrder(10, order.NewItem(1, price("1")))
				o.Initialize()
				return o
			},
			field: "totalPrice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()

			var fieldErr *errs.FieldNotValidError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
			require.ErrorIs(t, err, errs.ErrFieldNotValid)
		})
	}

	t.Run("valid order passes", func(t *testing.T) {
		o := newInitializedOrder(t, order.NewItem(2, price("1.25")))

		require.NoError(t, o.Validate())
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignID(t *testing.T) {
	o := newInitializedOrder(t, order.NewItem(1, price("1")))
	id := kernel.NewUUID()

	require.Error(t, o.AssignID(kernel.UUID{}))
	require.NoError(t, o.AssignID(id))
	require.ErrorIs(t, o.AssignID(kernel.NewUUID()), order.ErrIDAlreadyAssigned)
	assert.True(t, o.ID().IsEqual(id))
	assert.True(t, o.IsPersisted())
}

func TestRestoreOrder(t *testing.T) {
	createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []order.HistoryEntry{
		order.NewHistoryEntry(order.Reserved, createdAt),
		order.NewHistoryEntry(order.Cancelled, createdAt.Add(time.Hour)),
	}

	t.Run("derives current status from the last entry", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), createdAt, 42,
			[]order.Item{order.NewItem(2, price("3"))}, history, price("3"))

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		require.NoError(t, o.Validate())
	})

	t.Run("requires identity and history", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.UUID{}, createdAt, 42, nil, history, price("0"))
		require.Error(t, err)

		_, err = order.RestoreOrder(kernel.NewUUID(), createdAt, 42, nil, nil, price("0"))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestHistoryEntry_Equal(t *testing.T) {
	at := time.Now()
	a := order.NewHistoryEntry(order.Delivered, at)
	b := order.NewHistoryEntry(order.Delivered, at.Add(time.Minute))
	c := order.NewHistoryEntry(order.Cancelled, at)

	assert.True(t, a.Equal(b), "entries compare by status only")
	assert.False(t, a.Equal(c))
}

func TestStatusCannotBeChangedError(t *testing.T) {
	o := newInitializedOrder(t, order.NewItem(1, price("1")))
	cause := o.AddHistoryEntry(order.Reserved)

	err := order.NewStatusCannotBeChangedError(cause)

	require.ErrorIs(t, err, order.ErrStatusCannotBeChanged)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
	assert.Equal(t, "status cannot be changed: illegal status transition: order is already RESERVED", err.Error())
}
