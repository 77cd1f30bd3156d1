package queries

import (
	"errors"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/pkg/guard"
)

var ErrFindUsersQueryIsNotConstructed = errors.New(
	"FindUsersQuery must be created via NewFindUsersQuery constructor",
)

type FindUsersQuery struct {
	filter filter.UserFilter

	guard guard.ConstructorGuard
}

func NewFindUsersQuery(f filter.UserFilter) FindUsersQuery {
	return FindUsersQuery{filter: f, guard: guard.NewConstructorGuard()}
}

func (q FindUsersQuery) Validate() error {
	return q.guard.Validate(ErrFindUsersQueryIsNotConstructed)
}

func (q FindUsersQuery) Filter() filter.UserFilter {
	return q.filter
}
