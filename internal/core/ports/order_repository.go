package ports

import (
	"context"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
)

// OrderReader is the read side used by the queue calculator and the query handlers.
type OrderReader interface {
	// Get retrieves an order by identity.
	// Returns an error wrapping errs.ErrObjectNotFound when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByFilter returns the page selected by f and the total number of
	// matching orders. Without an explicit order field rows are sorted by
	// creation time ascending.
	FindByFilter(ctx context.Context, f filter.OrderFilter) (filter.Page[*order.Order], error)

	// FindAll returns every order sorted ascending by orderField
	// (creation time when empty).
	FindAll(ctx context.Context, orderField string) ([]*order.Order, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	OrderReader

	// Add persists a new order and assigns its identity.
	// A second RESERVED order for the same customer fails with
	// order.ErrDuplicateActiveOrder.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status, total and newly appended history entries
	// of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error
}
