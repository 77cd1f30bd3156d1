package queries

import (
	"context"
	"errors"
	"fmt"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/errs"
)

type GetOrderQueryHandler struct {
	orders ports.OrderReader
}

func NewGetOrderQueryHandler(orders ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns an error wrapping order.ErrOrderNotFound for an unknown identity.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, query.OrderID())
	}
	return o, err
}
