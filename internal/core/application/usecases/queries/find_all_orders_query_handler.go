package queries

import (
	"context"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"
)

type FindAllOrdersQueryHandler struct {
	orders ports.OrderReader
}

func NewFindAllOrdersQueryHandler(orders ports.OrderReader) FindAllOrdersQueryHandler {
	return FindAllOrdersQueryHandler{orders: orders}
}

// Handle fails with authz.ErrNotAuthorized unless the caller is EMPLOYEE or
// ADMIN, and with *errs.FieldNotValidError for an unknown order field.
func (h FindAllOrdersQueryHandler) Handle(ctx context.Context, query FindAllOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if caller := query.Caller(); !caller.IsEmployeeEquivalent() {
		return nil, caller.Deny("list all orders")
	}

	return h.orders.FindAll(ctx, query.OrderField())
}
