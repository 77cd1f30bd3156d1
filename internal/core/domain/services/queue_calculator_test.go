package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storehouse/internal/adapters/out/memory"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type queueFixture struct {
	repo *memory.OrderRepository
	calc services.QueueCalculator
}

func newQueueFixture() queueFixture {
	repo := memory.NewOrderRepository(memory.NewStore())
	return queueFixture{repo: repo, calc: services.NewQueueCalculator(repo)}
}

func (f queueFixture) place(t *testing.T, customerID user.ID, quantity int, at time.Time, status order.Status) {
	t.Helper()
	history := []order.HistoryEntry{order.NewHistoryEntry(order.Reserved, at)}
	if status != order.Reserved {
		history = append(history, order.NewHistoryEntry(status, at.Add(time.Second)))
	}
	o, err := order.RestoreOrder(kernel.NewUUID(), at, customerID,
		[]order.Item{order.NewItem(quantity, decimal.Zero)}, history, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, f.repo.Add(t.Context(), o))
}

func (f queueFixture) assertStanding(t *testing.T, customerID user.ID, position, wait int) {
	t.Helper()
	gotPosition, err := f.calc.Position(t.Context(), customerID)
	require.NoError(t, err)
	gotWait, err := f.calc.WaitTime(t.Context(), customerID)
	require.NoError(t, err)
	assert.Equal(t, position, gotPosition, "position of customer %d", customerID)
	assert.Equal(t, wait, gotWait, "wait time of customer %d", customerID)
}

func TestQueueCalculator(t *testing.T) {
	t.Run("premium customers are ahead of earlier standard ones", func(t *testing.T) {
		f := newQueueFixture()
		f.place(t, 5000, 10, t0, order.Reserved)
		f.place(t, 200, 5, t0.Add(time.Minute), order.Reserved)

		f.assertStanding(t, 5000, 2, 15)
		f.assertStanding(t, 200, 1, 5)
	})

	t.Run("customer without a reserved order is not queued", func(t *testing.T) {
		f := newQueueFixture()
		f.place(t, 5000, 10, t0, order.Delivered)

		f.assertStanding(t, 5000, services.NotQueued, services.NotQueued)
		f.assertStanding(t, 6000, services.NotQueued, services.NotQueued)
	})

	t.Run("a later premium order pushes standard customers back", func(t *testing.T) {
		f := newQueueFixture()
		f.place(t, 5000, 10, t0, order.Reserved)
		f.place(t, 200, 5, t0.Add(time.Minute), order.Reserved)
		f.place(t, 300, 7, t0.Add(2*time.Minute), order.Reserved)

		f.assertStanding(t, 5000, 3, 22)
		f.assertStanding(t, 200, 1, 5)
		f.assertStanding(t, 300, 2, 12)
	})

	t.Run("standard customers are FIFO among themselves", func(t *testing.T) {
		f := newQueueFixture()
		f.place(t, 5000, 4, t0, order.Reserved)
		f.place(t, 5001, 6, t0.Add(time.Minute), order.Reserved)
		f.place(t, 5002, 1, t0.Add(2*time.Minute), order.Cancelled)

		f.assertStanding(t, 5000, 1, 4)
		f.assertStanding(t, 5001, 2, 10)
	})

	t.Run("orders created at the same instant are both counted", func(t *testing.T) {
		f := newQueueFixture()
		f.place(t, 100, 2, t0, order.Reserved)
		f.place(t, 101, 3, t0, order.Reserved)

		f.assertStanding(t, 100, 2, 5)
		f.assertStanding(t, 101, 2, 5)
	})

	t.Run("premium threshold is exclusive", func(t *testing.T) {
		f := newQueueFixture()
		f.place(t, 999, 1, t0.Add(time.Minute), order.Reserved)
		f.place(t, 1000, 1, t0, order.Reserved)

		f.assertStanding(t, 999, 1, 1)
		f.assertStanding(t, 1000, 2, 2)
	})
}

type failingReader struct {
	*memory.OrderRepository
	err error
}

func (r failingReader) FindByFilter(context.Context, filter.OrderFilter) (filter.Page[*order.Order], error) {
	return filter.Page[*order.Order]{}, r.err
}

func TestQueueCalculator_PropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("connection reset")
	calc := services.NewQueueCalculator(failingReader{err: boom})

	_, err := calc.Position(t.Context(), 5000)
	assert.ErrorIs(t, err, boom)

	_, err = calc.WaitTime(t.Context(), 200)
	assert.ErrorIs(t, err, boom)
}
