package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/errs"

	"github.com/samber/lo"
)

// PlaceOrderCommandHandler reserves a queue slot.
//
// The order is committed before anything leaves the service. The intake
// message and the order-placed event are best-effort: their failures are
// logged and never undo the reservation.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	intake     ports.IntakeChannel
	events     ports.EventPublisher
	logger     *slog.Logger
}

func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	intake ports.IntakeChannel,
	events ports.EventPublisher,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		intake:     intake,
		events:     events,
		logger:     logger.With("component", "place_order_handler"),
	}
}

// Handle returns the persisted order.
//
// Errors:
//   - order.ErrInvalidCustomerReference: the caller is not a stored customer,
//     or the declared customer is zero or someone else
//   - order.ErrDuplicateActiveOrder: the customer already holds a RESERVED order
//   - *errs.FieldNotValidError: the order failed validation
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	caller := cmd.Caller()
	customer, err := uow.UserRepository().Get(ctx, caller.ID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: user %d does not exist", order.ErrInvalidCustomerReference, caller.ID)
	}
	if err != nil {
		return nil, err
	}
	if !customer.IsCustomer() {
		return nil, fmt.Errorf("%w: user %d is not a customer", order.ErrInvalidCustomerReference, caller.ID)
	}
	if cmd.CustomerID() != customer.ID() {
		return nil, fmt.Errorf("%w: order declared for customer %d", order.ErrInvalidCustomerReference, cmd.CustomerID())
	}

	orderRepo := uow.OrderRepository()
	active, err := orderRepo.FindByFilter(ctx, filter.OrderFilter{
		GenericFilter: filter.GenericFilter{Pagination: &filter.PaginationData{MaxResults: 1}},
		CustomerID:    lo.ToPtr(customer.ID()),
		Status:        lo.ToPtr(order.Reserved),
	})
	if err != nil {
		return nil, err
	}
	if !active.IsEmpty() {
		return nil, fmt.Errorf("%w: customer %d", order.ErrDuplicateActiveOrder, customer.ID())
	}

	placed := order.NewOrder(customer.ID(), cmd.Items()...)
	placed.Initialize()
	placed.CalculateTotalPrice()
	if err = placed.Validate(); err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.emit(ctx, placed)
	return placed, nil
}

func (h PlaceOrderCommandHandler) emit(ctx context.Context, placed *order.Order) {
	priority := ports.PriorityFor(placed.CustomerID())
	if err := h.intake.Send(ctx, placed, priority); err != nil {
		h.logger.WarnContext(ctx, "Order was not sent to intake",
			"order_id", placed.ID().String(), "priority", int(priority), "error", err)
	}

	if err := h.events.PublishOrderPlaced(ctx, placed); err != nil {
		h.logger.WarnContext(ctx, "Order placed event was not published",
			"order_id", placed.ID().String(), "error", err)
	}
}
