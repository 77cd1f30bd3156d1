package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a lifecycle transition.
//
// Authorization:
//   - PENDING and DELIVERED need an EMPLOYEE or ADMIN caller
//   - other callers may cancel their own orders only
//
// Example:
//
//	cmd, _ := NewUpdateOrderStatusCommand(caller, orderID, order.Delivered)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrOrderNotFound):
//	case errors.Is(err, authz.ErrNotAuthorized):
//	case errors.Is(err, order.ErrStatusCannotBeChanged):
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	events     ports.EventPublisher
	logger     *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	events ports.EventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger.With("component", "update_order_status_handler"),
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	target, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, cmd.OrderID())
	}
	if err != nil {
		return nil, err
	}

	if err = authorize(cmd.Caller(), target, cmd.Status()); err != nil {
		return nil, err
	}

	if err = target.AddHistoryEntry(cmd.Status()); err != nil {
		return nil, order.NewStatusCannotBeChangedError(err)
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.events.PublishOrderStatusChanged(ctx, target); err != nil {
		h.logger.WarnContext(ctx, "Order status event was not published",
			"order_id", target.ID().String(), "status", target.Status().String(), "error", err)
	}

	return target, nil
}

func authorize(caller authz.Caller, target *order.Order, next order.Status) error {
	switch next {
	case order.Pending, order.Delivered:
		if !caller.IsEmployeeEquivalent() {
			return caller.Deny("mark orders " + next.String())
		}
	case order.Cancelled:
		if !caller.IsEmployeeEquivalent() && target.CustomerID() != caller.ID {
			return caller.Deny("cancel another customer's order")
		}
	case order.Unknown, order.Reserved:
	}
	return nil
}
