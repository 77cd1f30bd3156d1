package queries

import (
	"context"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
)

type GetReservedOrdersQueryHandler struct {
	orders ports.OrderReader
}

func NewGetReservedOrdersQueryHandler(orders ports.OrderReader) GetReservedOrdersQueryHandler {
	return GetReservedOrdersQueryHandler{orders: orders}
}

// Handle returns every RESERVED order, oldest first.
// Any caller holding the CUSTOMER role is refused with authz.ErrNotAuthorized,
// even when it also holds a staff role.
func (h GetReservedOrdersQueryHandler) Handle(ctx context.Context, query GetReservedOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller := query.Caller()
	if caller.HasRole(user.RoleCustomer) {
		return nil, caller.Deny("list reserved orders")
	}

	page, err := h.orders.FindByFilter(ctx, filter.OrderFilter{Status: lo.ToPtr(order.Reserved)})
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}
