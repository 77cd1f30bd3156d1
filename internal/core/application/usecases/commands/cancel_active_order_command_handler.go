package commands

import (
	"context"
	"fmt"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
)

// CancelActiveOrderCommandHandler looks up the customer's RESERVED order and
// cancels it through the status update use case, so the transition rules,
// authorization and event publication are the ones of UpdateOrderStatus.
//
// Errors:
//   - authz.ErrNotAuthorized: the caller is neither staff nor the customer
//   - order.ErrOrderNotFound: the customer holds no RESERVED order
type CancelActiveOrderCommandHandler struct {
	orders  ports.OrderReader
	updater UpdateOrderStatusHandler
}

func NewCancelActiveOrderCommandHandler(
	orders ports.OrderReader,
	updater UpdateOrderStatusHandler,
) CancelActiveOrderCommandHandler {
	return CancelActiveOrderCommandHandler{orders: orders, updater: updater}
}

func (h CancelActiveOrderCommandHandler) Handle(ctx context.Context, cmd CancelActiveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	caller := cmd.Caller()
	if !caller.IsEmployeeEquivalent() && caller.ID != cmd.CustomerID() {
		return nil, caller.Deny("cancel another customer's order")
	}

	active, err := h.orders.FindByFilter(ctx, filter.OrderFilter{
		GenericFilter: filter.GenericFilter{Pagination: &filter.PaginationData{MaxResults: 1}},
		CustomerID:    lo.ToPtr(cmd.CustomerID()),
		Status:        lo.ToPtr(order.Reserved),
	})
	if err != nil {
		return nil, err
	}
	if active.IsEmpty() {
		return nil, fmt.Errorf("%w: customer %d holds no reserved order", order.ErrOrderNotFound, cmd.CustomerID())
	}

	update, err := NewUpdateOrderStatusCommand(caller, active.Row(0).ID(), order.Cancelled)
	if err != nil {
		return nil, err
	}
	return h.updater.Handle(ctx, update)
}
