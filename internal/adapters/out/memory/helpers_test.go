package memory_test

import (
	"testing"
	"time"

	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func restoredOrder(t *testing.T, customerID user.ID, quantity int, createdAt time.Time, status order.Status) *order.Order {
	t.Helper()

	history := []order.HistoryEntry{order.NewHistoryEntry(order.Reserved, createdAt)}
	if status != order.Reserved {
		history = append(history, order.NewHistoryEntry(status, createdAt.Add(time.Minute)))
	}
	price := decimal.NewFromInt(int64(quantity))

	o, err := order.RestoreOrder(kernel.NewUUID(), createdAt, customerID,
		[]order.Item{order.NewItem(quantity, price)}, history, price)
	require.NoError(t, err)
	return o
}
