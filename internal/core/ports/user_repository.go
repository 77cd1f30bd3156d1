package ports

import (
	"context"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/user"
)

// UserRepository stores customers and employees.
type UserRepository interface {
	// Add persists a new user. The store assigns the identity unless the
	// user already carries one. A duplicate email fails with user.ErrUserAlreadyExists.
	Add(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id user.ID) (*user.User, error)

	FindByEmail(ctx context.Context, email string) (*user.User, error)

	// FindByFilter sorts by name unless the filter names another field.
	FindByFilter(ctx context.Context, f filter.UserFilter) (filter.Page[*user.User], error)
}
