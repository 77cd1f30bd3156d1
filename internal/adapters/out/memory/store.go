package memory

import (
	"context"
	"slices"
	"sync"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
)

// Store holds the in-process state shared by every repository and unit of work
// created from it.
//
// Rows are kept as private copies: repositories clone on the way in and on the
// way out, so callers never alias stored aggregates.
type Store struct {
	mu         sync.RWMutex
	orders     []*order.Order
	users      []*user.User
	nextUserID user.ID

	// tx admits one unit of work at a time.
	tx chan struct{}
}

func NewStore() *Store {
	return &Store{
		nextUserID: 1,
		tx:         make(chan struct{}, 1),
	}
}

type state struct {
	orders     []*order.Order
	users      []*user.User
	nextUserID user.ID
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return state{
		orders:     slices.Clone(s.orders),
		users:      slices.Clone(s.users),
		nextUserID: s.nextUserID,
	}
}

func (s *Store) restore(st state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = st.orders
	s.users = st.users
	s.nextUserID = st.nextUserID
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.tx <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.tx
}

func cloneOrder(o *order.Order) *order.Order {
	// o was validated before it was stored, so restoring cannot fail.
	c, _ := order.RestoreOrder(o.ID(), o.CreatedAt(), o.CustomerID(), o.Items(), o.History(), o.TotalPrice())
	return c
}

func cloneUser(u *user.User) *user.User {
	c, _ := user.RestoreUser(u.ID(), u.Kind(), u.Name(), u.Email(), u.Roles(), u.CreatedAt())
	return c
}
