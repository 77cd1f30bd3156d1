package queries

import (
	"errors"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/pkg/guard"
)

var ErrFindAllOrdersQueryIsNotConstructed = errors.New(
	"FindAllOrdersQuery must be created via NewFindAllOrdersQuery constructor",
)

// FindAllOrdersQuery lists every order sorted ascending by orderField.
// An empty field sorts by creation time. Staff only.
type FindAllOrdersQuery struct {
	caller     authz.Caller
	orderField string

	guard guard.ConstructorGuard
}

func NewFindAllOrdersQuery(caller authz.Caller, orderField string) FindAllOrdersQuery {
	return FindAllOrdersQuery{caller: caller, orderField: orderField, guard: guard.NewConstructorGuard()}
}

func (q FindAllOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFindAllOrdersQueryIsNotConstructed)
}

func (q FindAllOrdersQuery) Caller() authz.Caller {
	return q.caller
}

func (q FindAllOrdersQuery) OrderField() string {
	return q.orderField
}
