package ports

import (
	"context"
	"errors"
	"time"

	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
)

// ErrOrderIsNotPersisted is returned by Send for an order without identity.
var ErrOrderIsNotPersisted = errors.New("order must be persisted before it is sent")

// Priority is the two-level delivery hint of the intake channel.
// Higher values are delivered first.
type Priority int

const (
	PriorityLow  Priority = 3
	PriorityHigh Priority = 9
)

// PriorityFor returns PriorityHigh for premium customers.
func PriorityFor(customerID user.ID) Priority {
	if user.IsPremiumID(customerID) {
		return PriorityHigh
	}
	return PriorityLow
}

// IntakeMessage is the snapshot of a placed order carried by the channel.
type IntakeMessage struct {
	OrderID    kernel.UUID
	CustomerID user.ID
	Quantity   int
	Priority   Priority
	EnqueuedAt time.Time
}

// IntakeChannel is the asynchronous queue feeding fulfilment.
//
// Messages are delivered by priority (high first) and FIFO within a priority.
type IntakeChannel interface {
	// Send enqueues a snapshot of o.
	Send(ctx context.Context, o *order.Order, priority Priority) error

	// Browse returns up to limit pending messages in delivery order without consuming them.
	Browse(ctx context.Context, limit int) ([]IntakeMessage, error)

	// Consume removes and returns up to n messages from the head of the channel.
	Consume(ctx context.Context, n int) ([]IntakeMessage, error)
}
