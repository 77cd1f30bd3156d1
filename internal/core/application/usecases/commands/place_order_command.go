package commands

import (
	"errors"
	"slices"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"
	"storehouse/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand asks to reserve a queue slot for customerID.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(caller, caller.ID, []order.Item{
//	    order.NewItem(3, decimal.RequireFromString("2.40")),
//	})
//	if err != nil {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	caller     authz.Caller
	customerID user.ID
	items      []order.Item

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand checks the shape of the request. Whether customerID
// matches the caller is decided by the handler.
func NewPlaceOrderCommand(caller authz.Caller, customerID user.ID, items []order.Item) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCaller(caller),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Caller() authz.Caller {
	return c.caller
}

// CustomerID is the customer the order is declared for.
func (c PlaceOrderCommand) CustomerID() user.ID {
	return c.customerID
}

func (c PlaceOrderCommand) Items() []order.Item {
	return slices.Clone(c.items)
}

func (c *PlaceOrderCommand) setCaller(caller authz.Caller) error {
	if caller.ID <= 0 {
		return errs.NewValueIsRequiredError("caller")
	}
	c.caller = caller
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewFieldNotValidErrorWithCause("items", errs.NewValueIsRequiredError("items"))
	}
	c.items = slices.Clone(items)
	return nil
}
