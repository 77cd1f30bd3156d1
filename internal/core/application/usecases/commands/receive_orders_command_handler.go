package commands

import (
	"context"
	"fmt"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/services"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
)

// ReceiveOrdersCommandHandler admits the next batch of intake messages.
//
// It browses up to order.MaxLoad messages in delivery order, lets the batcher
// pick the prefix that fits one batch and consumes exactly that prefix.
// An empty channel yields an empty batch.
type ReceiveOrdersCommandHandler struct {
	intake  ports.IntakeChannel
	batcher services.IntakeBatcher
}

func NewReceiveOrdersCommandHandler(intake ports.IntakeChannel, batcher services.IntakeBatcher) ReceiveOrdersCommandHandler {
	return ReceiveOrdersCommandHandler{intake: intake, batcher: batcher}
}

func (h ReceiveOrdersCommandHandler) Handle(ctx context.Context, cmd ReceiveOrdersCommand) ([]ports.IntakeMessage, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if caller, ok := cmd.Caller(); ok && !caller.IsEmployeeEquivalent() {
		return nil, caller.Deny("receive intake batches")
	}

	browsed, err := h.intake.Browse(ctx, order.MaxLoad)
	if err != nil {
		return nil, fmt.Errorf("browse intake: %w", err)
	}

	size := h.batcher.BatchSize(lo.Map(browsed, func(m ports.IntakeMessage, _ int) int {
		return m.Quantity
	}))
	if size == 0 {
		return []ports.IntakeMessage{}, nil
	}

	batch, err := h.intake.Consume(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("consume intake: %w", err)
	}
	return batch, nil
}
