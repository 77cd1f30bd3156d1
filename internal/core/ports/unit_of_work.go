package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh unit per business operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups order and user writes into one atomic change.
//
// Repositories obtained before Begin or after Commit/Rollback operate outside
// any transaction. Commit and Rollback fail when no transaction is open.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	UserRepository() UserRepository
}
