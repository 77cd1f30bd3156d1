package queries

import (
	"context"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
)

type FindOrdersQueryHandler struct {
	orders ports.OrderReader
}

func NewFindOrdersQueryHandler(orders ports.OrderReader) FindOrdersQueryHandler {
	return FindOrdersQueryHandler{orders: orders}
}

// Handle sorts by creation time ascending unless the filter names an order field.
//
// EMPLOYEE and ADMIN callers see every order. Other callers only see their
// own: the customer filter is pinned to the caller, and naming another
// customer fails with authz.ErrNotAuthorized.
func (h FindOrdersQueryHandler) Handle(ctx context.Context, query FindOrdersQuery) (filter.Page[*order.Order], error) {
	if err := query.Validate(); err != nil {
		return filter.Page[*order.Order]{}, err
	}

	f := query.Filter()
	if caller := query.Caller(); !caller.IsEmployeeEquivalent() {
		if f.CustomerID != nil && *f.CustomerID != caller.ID {
			return filter.Page[*order.Order]{}, caller.Deny("list another customer's orders")
		}
		f.CustomerID = lo.ToPtr(caller.ID)
	}

	return h.orders.FindByFilter(ctx, f)
}
