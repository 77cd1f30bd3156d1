package queries

import (
	"errors"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/pkg/guard"
)

var ErrGetQueueReportQueryIsNotConstructed = errors.New(
	"GetQueueReportQuery must be created via NewGetQueueReportQuery constructor",
)

// GetQueueReportQuery asks for the standing of every RESERVED order. Staff only.
type GetQueueReportQuery struct {
	caller authz.Caller

	guard guard.ConstructorGuard
}

func NewGetQueueReportQuery(caller authz.Caller) GetQueueReportQuery {
	return GetQueueReportQuery{caller: caller, guard: guard.NewConstructorGuard()}
}

func (q GetQueueReportQuery) Validate() error {
	return q.guard.Validate(ErrGetQueueReportQueryIsNotConstructed)
}

func (q GetQueueReportQuery) Caller() authz.Caller {
	return q.caller
}
