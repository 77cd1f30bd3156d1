package memory

import (
	"context"
	"errors"

	"storehouse/internal/core/ports"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates units of work over a shared Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork serializes writers on the Store. Begin waits for the previous
// unit of work to finish; Rollback restores the state captured by Begin.
//
// Repositories write through immediately, so reads made outside a unit of
// work can observe uncommitted changes.
type UnitOfWork struct {
	store  *Store
	saved  state
	active bool
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := uow.store.acquire(ctx); err != nil {
		return err
	}
	uow.saved = uow.store.snapshot()
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.finish()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.store.restore(uow.saved)
	uow.finish()
	return nil
}

func (uow *UnitOfWork) finish() {
	uow.saved = state{}
	uow.active = false
	uow.store.release()
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return NewOrderRepository(uow.store)
}

func (uow *UnitOfWork) UserRepository() ports.UserRepository {
	return NewUserRepository(uow.store)
}
