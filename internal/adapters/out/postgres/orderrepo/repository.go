package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"storehouse/internal/adapters/out/postgres/paging"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var columns = paging.Columns{
	filter.FieldID:            "id",
	filter.FieldCreatedAt:     "created_at",
	filter.FieldCustomerID:    "customer_id",
	filter.FieldCurrentStatus: "current_status",
	filter.FieldTotalPrice:    "total",
}

// GormOrderRepository implements ports.OrderRepository using GORM.
// The connection must be opened with gorm.Config.TranslateError so that
// unique violations surface as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates written through the repository.
type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with its items and history, then assigns the identity.
// The orders_one_reserved_per_customer index rejects a second RESERVED order.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID()
	if !aggregate.IsPersisted() {
		id = kernel.NewUUID()
	}

	dto := fromDomain(id, aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) && aggregate.Status() == order.Reserved {
			return fmt.Errorf("%w: customer %d", order.ErrDuplicateActiveOrder, aggregate.CustomerID())
		}
		return err
	}

	if !aggregate.IsPersisted() {
		if err := aggregate.AssignID(id); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the status and total, and appends history entries not yet stored.
// Items are immutable once placed.
//
// The order row is locked first. The stored history must be a prefix of the
// aggregate's history; when another transaction moved the order on since it
// was loaded, Update fails with order.ErrStatusCannotBeChanged.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate.ID(), aggregate)
	db := r.db.WithContext(ctx)

	var locked OrderDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "current_status").
		First(&locked, "id = ?", dto.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if err != nil {
		return err
	}

	var stored []OrderHistoryEntryDTO
	if err := db.Where("order_id = ?", dto.ID).Order("sequence").Find(&stored).Error; err != nil {
		return err
	}
	if !isPrefix(stored, dto.History) {
		return order.NewStatusCannotBeChangedError(
			fmt.Errorf("order %s is %s in storage", aggregate.ID(), locked.CurrentStatus))
	}

	err = db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"current_status": dto.CurrentStatus,
		"total":          dto.Total,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: customer %d", order.ErrDuplicateActiveOrder, aggregate.CustomerID())
		}
		return err
	}

	if added := dto.History[len(stored):]; len(added) > 0 {
		if err := db.Create(&added).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return order.NewStatusCannotBeChangedError(
					fmt.Errorf("history of order %s was extended concurrently", aggregate.ID()))
			}
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func isPrefix(stored, history []OrderHistoryEntryDTO) bool {
	if len(stored) > len(history) {
		return false
	}
	for i, entry := range stored {
		if entry.Status != history[i].Status {
			return false
		}
	}
	return true
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Scopes(withDetails).First(&dto, "id = ?", id.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) FindByFilter(ctx context.Context, f filter.OrderFilter) (filter.Page[*order.Order], error) {
	if err := f.Validate(); err != nil {
		return filter.Page[*order.Order]{}, err
	}

	dtos, total, err := paging.Find[OrderDTO](ctx, r.db, f.Plan(), columns, withDetails)
	if err != nil {
		return filter.Page[*order.Order]{}, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return filter.Page[*order.Order]{}, err
		}
		orders = append(orders, o)
	}

	return filter.NewPage(total, orders), nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context, orderField string) ([]*order.Order, error) {
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

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") })
}
