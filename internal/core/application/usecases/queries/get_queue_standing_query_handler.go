package queries

import (
	"context"

	"storehouse/internal/core/domain/services"
)

// GetQueuePositionQueryHandler returns the 1-based position, or
// services.NotQueued when the customer holds no RESERVED order.
type GetQueuePositionQueryHandler struct {
	calculator services.QueueCalculator
}

func NewGetQueuePositionQueryHandler(calculator services.QueueCalculator) GetQueuePositionQueryHandler {
	return GetQueuePositionQueryHandler{calculator: calculator}
}

func (h GetQueuePositionQueryHandler) Handle(ctx context.Context, query GetQueueStandingQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	return h.calculator.Position(ctx, query.CustomerID())
}

// GetQueueWaitTimeQueryHandler returns the quantity queued up to and including
// the customer's order, or services.NotQueued.
type GetQueueWaitTimeQueryHandler struct {
	calculator services.QueueCalculator
}

func NewGetQueueWaitTimeQueryHandler(calculator services.QueueCalculator) GetQueueWaitTimeQueryHandler {
	return GetQueueWaitTimeQueryHandler{calculator: calculator}
}

func (h GetQueueWaitTimeQueryHandler) Handle(ctx context.Context, query GetQueueStandingQuery) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}
	return h.calculator.WaitTime(ctx, query.CustomerID())
}
