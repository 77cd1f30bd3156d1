package services

import (
	"context"
	"fmt"
	"time"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
)

// NotQueued is returned by Position and WaitTime when the customer holds no
// RESERVED order.
const NotQueued = -1

// QueueCalculator computes a customer's standing in the RESERVED-order queue.
//
// Business rules:
//   - premium orders always rank ahead of standard orders, whatever their age
//   - inside a tier orders are served FIFO by creation time
//   - the comparison is inclusive: the customer's own order counts
//
// Example usage:
//
//	calc := NewQueueCalculator(orderRepo)
//	pos, err := calc.Position(ctx, customerID)
//	if err != nil {
//	    return err
//	}
//	if pos == NotQueued {
//	    // customer has no active order
//	}
type QueueCalculator struct {
	orders ports.OrderReader
}

func NewQueueCalculator(orders ports.OrderReader) QueueCalculator {
	return QueueCalculator{orders: orders}
}

// metric folds one filtered scan into a number.
type metric struct {
	// window bounds the row scan; nil loads every matching row.
	window *filter.PaginationData
	value  func(page filter.Page[*order.Order]) int
}

// countOrders needs the total only, so a single row is fetched.
var countOrders = metric{
	window: &filter.PaginationData{MaxResults: 1},
	value: func(page filter.Page[*order.Order]) int {
		return page.NumberOfRows
	},
}

var sumQuantities = metric{
	value: func(page filter.Page[*order.Order]) int {
		return lo.SumBy(page.Rows, func(o *order.Order) int {
			return o.CalculateTotalQuantity()
		})
	},
}

// Position returns the 1-based queue position of the customer's RESERVED order,
// or NotQueued.
//
// Premium customer: premium RESERVED orders created at or before theirs.
// Standard customer: every premium RESERVED order plus standard RESERVED
// orders created at or before theirs.
func (c QueueCalculator) Position(ctx context.Context, customerID user.ID) (int, error) {
	return c.measure(ctx, customerID, countOrders)
}

// WaitTime sums the item quantities of the orders counted by Position,
// or returns NotQueued.
func (c QueueCalculator) WaitTime(ctx context.Context, customerID user.ID) (int, error) {
	return c.measure(ctx, customerID, sumQuantities)
}

func (c QueueCalculator) measure(ctx context.Context, customerID user.ID, m metric) (int, error) {
	own, err := c.orders.FindByFilter(ctx, filter.OrderFilter{
		GenericFilter: filter.GenericFilter{Pagination: &filter.PaginationData{MaxResults: 1}},
		CustomerID:    &customerID,
		Status:        lo.ToPtr(order.Reserved),
	})
	if err != nil {
		return 0, fmt.Errorf("find reserved order of customer %d: %w", customerID, err)
	}
	if own.IsEmpty() {
		return NotQueued, nil
	}
	reservedAt := own.Row(0).CreatedAt()

	if user.IsPremiumID(customerID) {
		return c.scan(ctx, filter.PremiumTier, &reservedAt, m)
	}

	ahead, err := c.scan(ctx, filter.PremiumTier, nil, m)
	if err != nil {
		return 0, err
	}
	sameTier, err := c.scan(ctx, filter.StandardTier, &reservedAt, m)
	if err != nil {
		return 0, err
	}
	return ahead + sameTier, nil
}

// scan measures the RESERVED orders of tier, optionally created at or before until.
func (c QueueCalculator) scan(ctx context.Context, tier filter.Tier, until *time.Time, m metric) (int, error) {
	page, err := c.orders.FindByFilter(ctx, filter.OrderFilter{
		GenericFilter: filter.GenericFilter{Pagination: m.window},
		EndDate:       until,
		Status:        lo.ToPtr(order.Reserved),
		Tier:          tier,
	})
	if err != nil {
		return 0, fmt.Errorf("scan reserved orders: %w", err)
	}
	return m.value(page), nil
}
