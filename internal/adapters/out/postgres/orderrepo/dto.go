// Package orderrepo persists order aggregates across the orders, order_items
// and order_history_entries tables.
package orderrepo

import (
	"time"

	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table. CurrentStatus duplicates the last
// history entry so the queue scans need no join.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	CustomerID    int64     `gorm:"index"`
	CurrentStatus string
	Total         decimal.Decimal        `gorm:"type:numeric(19,4)"`
	Items         []OrderItemDTO         `gorm:"foreignKey:OrderID;references:ID"`
	History       []OrderHistoryEntryDTO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line; Position keeps the placement order.
type OrderItemDTO struct {
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"primaryKey;autoIncrement:false"`
	Quantity int
	Price    decimal.Decimal `gorm:"type:numeric(19,4)"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderHistoryEntryDTO is one status transition; Sequence is its index in the history.
type OrderHistoryEntryDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sequence  int       `gorm:"primaryKey;autoIncrement:false"`
	Status    string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (OrderHistoryEntryDTO) TableName() string {
	return "order_history_entries"
}

func fromDomain(id kernel.UUID, o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            id.Raw(),
		CreatedAt:     o.CreatedAt(),
		CustomerID:    int64(o.CustomerID()),
		CurrentStatus: o.Status().String(),
		Total:         o.TotalPrice(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:  dto.ID,
			Position: i,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	dto.History = historyFromDomain(dto.ID, o.History())

	return dto
}

func historyFromDomain(orderID uuid.UUID, history []order.HistoryEntry) []OrderHistoryEntryDTO {
	dtos := make([]OrderHistoryEntryDTO, 0, len(history))
	for i, entry := range history {
		dtos = append(dtos, OrderHistoryEntryDTO{
			OrderID:   orderID,
			Sequence:  i,
			Status:    entry.Status().String(),
			CreatedAt: entry.CreatedAt(),
		})
	}
	return dtos
}

// toDomain restores the aggregate. Timestamps are normalized to UTC.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.NewItem(item.Quantity, item.Price))
	}

	history := make([]order.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		status, err := order.StatusFromString(entry.Status)
		if err != nil {
			return nil, err
		}
		history = append(history, order.NewHistoryEntry(status, entry.CreatedAt.UTC()))
	}

	return order.RestoreOrder(
		kernel.UUIDFrom(dto.ID),
		dto.CreatedAt.UTC(),
		user.ID(dto.CustomerID),
		items,
		history,
		dto.Total,
	)
}
