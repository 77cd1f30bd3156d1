package memory

import (
	"context"
	"fmt"
	"slices"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/pkg/errs"

	"github.com/samber/lo"
)

var orderFields = Fields[*order.Order]{
	filter.FieldID:            func(o *order.Order) any { return o.ID().String() },
	filter.FieldCreatedAt:     func(o *order.Order) any { return o.CreatedAt() },
	filter.FieldCustomerID:    func(o *order.Order) any { return int64(o.CustomerID()) },
	filter.FieldCurrentStatus: func(o *order.Order) any { return o.Status().String() },
	filter.FieldTotalPrice:    func(o *order.Order) any { return o.TotalPrice() },
}

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Add stores a copy of aggregate and assigns a fresh identity unless it has one.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if aggregate.Status() == order.Reserved && slices.ContainsFunc(r.store.orders, func(o *order.Order) bool {
		return o.CustomerID() == aggregate.CustomerID() && o.Status() == order.Reserved
	}) {
		return fmt.Errorf("%w: customer %d", order.ErrDuplicateActiveOrder, aggregate.CustomerID())
	}

	if !aggregate.IsPersisted() {
		if err := aggregate.AssignID(kernel.NewUUID()); err != nil {
			return err
		}
	} else if r.indexOf(aggregate.ID()) >= 0 {
		return fmt.Errorf("order %s is already stored", aggregate.ID())
	}

	r.store.orders = append(r.store.orders, cloneOrder(aggregate))
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(aggregate.ID())
	if i < 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	r.store.orders[i] = cloneOrder(aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(r.store.orders[i]), nil
}

func (r *OrderRepository) FindByFilter(_ context.Context, f filter.OrderFilter) (filter.Page[*order.Order], error) {
	if err := f.Validate(); err != nil {
		return filter.Page[*order.Order]{}, err
	}

	r.store.mu.RLock()
	page, err := Apply(r.store.orders, f.Plan(), orderFields)
	r.store.mu.RUnlock()
	if err != nil {
		return filter.Page[*order.Order]{}, err
	}

	return filter.NewPage(page.NumberOfRows, lo.Map(page.Rows, func(o *order.Order, _ int) *order.Order {
		return cloneOrder(o)
	})), nil
}

func (r *OrderRepository) FindAll(ctx context.Context, orderField string) ([]*order.Order, error) {
	if orderField == "" {
		orderField = filter.FieldCreatedAt
	}
	page, err := r.FindByFilter(ctx, filter.OrderFilter{
		GenericFilter: filter.GenericFilter{Pagination: &filter.PaginationData{OrderField: orderField}},
	})
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

// indexOf must be called with the store lock held.
func (r *OrderRepository) indexOf(id kernel.UUID) int {
	return slices.IndexFunc(r.store.orders, func(o *order.Order) bool {
		return o.ID().IsEqual(id)
	})
}
