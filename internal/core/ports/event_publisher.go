package ports

import (
	"context"

	"storehouse/internal/core/domain/model/order"
)

// EventPublisher notifies other services about order lifecycle changes.
// Delivery is best-effort: callers publish after commit and only log failures.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order) error
	PublishOrderStatusChanged(ctx context.Context, o *order.Order) error
}
