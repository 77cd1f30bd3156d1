package queries

import (
	"errors"

	"storehouse/internal/core/application/authz"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/pkg/guard"
)

var ErrFindOrdersQueryIsNotConstructed = errors.New(
	"FindOrdersQuery must be created via NewFindOrdersQuery constructor",
)

// FindOrdersQuery is a filtered, paginated order listing.
//
// Example:
//
//	status := order.Reserved
//	query, err := NewFindOrdersQuery(caller, filter.OrderFilter{
//	    GenericFilter: filter.GenericFilter{Pagination: &filter.PaginationData{MaxResults: 20}},
//	    Status:        &status,
//	})
type FindOrdersQuery struct {
	caller authz.Caller
	filter filter.OrderFilter

	guard guard.ConstructorGuard
}

func NewFindOrdersQuery(caller authz.Caller, f filter.OrderFilter) (FindOrdersQuery, error) {
	if err := f.Validate(); err != nil {
		return FindOrdersQuery{}, err
	}
	return FindOrdersQuery{caller: caller, filter: f, guard: guard.NewConstructorGuard()}, nil
}

func (q FindOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFindOrdersQueryIsNotConstructed)
}

func (q FindOrdersQuery) Caller() authz.Caller {
	return q.caller
}

func (q FindOrdersQuery) Filter() filter.OrderFilter {
	return q.filter
}
