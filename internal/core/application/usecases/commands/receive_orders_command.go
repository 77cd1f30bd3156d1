package commands

import (
	"errors"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/pkg/guard"
)

var ErrReceiveOrdersCommandIsNotConstructed = errors.New(
	"ReceiveOrdersCommand must be created via NewReceiveOrdersCommand constructor",
)

// ReceiveOrdersCommand pulls the next capacity-bounded batch from the intake channel.
//
// The scheduler issues it without a caller. A batch requested over the API
// carries the requesting caller, who must be EMPLOYEE or ADMIN.
type ReceiveOrdersCommand struct {
	caller *authz.Caller

	guard guard.ConstructorGuard
}

func NewReceiveOrdersCommand() ReceiveOrdersCommand {
	return ReceiveOrdersCommand{guard: guard.NewConstructorGuard()}
}

func NewReceiveOrdersCommandFor(caller authz.Caller) ReceiveOrdersCommand {
	return ReceiveOrdersCommand{caller: &caller, guard: guard.NewConstructorGuard()}
}

func (c ReceiveOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReceiveOrdersCommandIsNotConstructed)
}

// Caller reports the requesting caller; ok is false for scheduled runs.
func (c ReceiveOrdersCommand) Caller() (caller authz.Caller, ok bool) {
	if c.caller == nil {
		return authz.Caller{}, false
	}
	return *c.caller, true
}
