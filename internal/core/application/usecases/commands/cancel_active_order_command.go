package commands

import (
	"errors"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"
	"storehouse/internal/pkg/guard"
)

var ErrCancelActiveOrderCommandIsNotConstructed = errors.New(
	"CancelActiveOrderCommand must be created via NewCancelActiveOrderCommand constructor",
)

// CancelActiveOrderCommand cancels the RESERVED order a customer currently holds.
type CancelActiveOrderCommand struct {
	caller     authz.Caller
	customerID user.ID

	guard guard.ConstructorGuard
}

func NewCancelActiveOrderCommand(caller authz.Caller, customerID user.ID) (CancelActiveOrderCommand, error) {
	if customerID <= 0 {
		return CancelActiveOrderCommand{}, errs.NewFieldNotValidErrorWithCause("customerId",
			errs.NewValueIsOutOfRangeError("customerId", customerID, 1, "unbounded"))
	}
	return CancelActiveOrderCommand{
		caller:     caller,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelActiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelActiveOrderCommandIsNotConstructed)
}

func (c CancelActiveOrderCommand) Caller() authz.Caller {
	return c.caller
}

func (c CancelActiveOrderCommand) CustomerID() user.ID {
	return c.customerID
}
