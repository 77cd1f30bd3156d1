package queries

import (
	"errors"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/pkg/guard"
)

var ErrGetReservedOrdersQueryIsNotConstructed = errors.New(
	"GetReservedOrdersQuery must be created via NewGetReservedOrdersQuery constructor",
)

// GetReservedOrdersQuery lists the whole RESERVED queue. Staff only.
type GetReservedOrdersQuery struct {
	caller authz.Caller

	guard guard.ConstructorGuard
}

func NewGetReservedOrdersQuery(caller authz.Caller) GetReservedOrdersQuery {
	return GetReservedOrdersQuery{caller: caller, guard: guard.NewConstructorGuard()}
}

func (q GetReservedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReservedOrdersQueryIsNotConstructed)
}

func (q GetReservedOrdersQuery) Caller() authz.Caller {
	return q.caller
}
