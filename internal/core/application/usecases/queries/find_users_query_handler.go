package queries

import (
	"context"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/user"
)

// UserReader is the read side of ports.UserRepository.
type UserReader interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByFilter(ctx context.Context, f filter.UserFilter) (filter.Page[*user.User], error)
}

type FindUsersQueryHandler struct {
	users UserReader
}

func NewFindUsersQueryHandler(users UserReader) FindUsersQueryHandler {
	return FindUsersQueryHandler{users: users}
}

// Handle sorts by name unless the filter names another field.
func (h FindUsersQueryHandler) Handle(ctx context.Context, query FindUsersQuery) (filter.Page[*user.User], error) {
	if err := query.Validate(); err != nil {
		return filter.Page[*user.User]{}, err
	}
	return h.users.FindByFilter(ctx, query.Filter())
}
