// Package intakequeue implements ports.IntakeChannel on the intake_messages
// table. Consumed rows are kept and stamped with consumed_at.
package intakequeue

import (
	"context"
	"time"

	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid"`
	CustomerID int64
	Quantity   int
	Priority   int
	EnqueuedAt time.Time
	ConsumedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "intake_messages"
}

func (m MessageDTO) toPort() ports.IntakeMessage {
	return ports.IntakeMessage{
		OrderID:    kernel.UUIDFrom(m.OrderID),
		CustomerID: user.ID(m.CustomerID),
		Quantity:   m.Quantity,
		Priority:   ports.Priority(m.Priority),
		EnqueuedAt: m.EnqueuedAt.UTC(),
	}
}

// GormIntakeChannel delivers by priority descending, then insertion order.
type GormIntakeChannel struct {
	db *gorm.DB
}

func NewGormIntakeChannel(db *gorm.DB) *GormIntakeChannel {
	return &GormIntakeChannel{db: db}
}

func (c *GormIntakeChannel) Send(ctx context.Context, o *order.Order, priority ports.Priority) error {
	if !o.IsPersisted() {
		return ports.ErrOrderIsNotPersisted
	}

	msg := MessageDTO{
		OrderID:    o.ID().Raw(),
		CustomerID: int64(o.CustomerID()),
		Quantity:   o.CalculateTotalQuantity(),
		Priority:   int(priority),
		EnqueuedAt: time.Now().UTC(),
	}
	return c.db.WithContext(ctx).Create(&msg).Error
}

func (c *GormIntakeChannel) Browse(ctx context.Context, limit int) ([]ports.IntakeMessage, error) {
	if limit <= 0 {
		return []ports.IntakeMessage{}, nil
	}

	var rows []MessageDTO
	if err := pending(c.db.WithContext(ctx)).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(m MessageDTO, _ int) ports.IntakeMessage { return m.toPort() }), nil
}

// Consume locks the head rows, skipping rows another consumer holds, and
// marks them consumed in the same transaction.
func (c *GormIntakeChannel) Consume(ctx context.Context, n int) ([]ports.IntakeMessage, error) {
	if n <= 0 {
		return []ports.IntakeMessage{}, nil
	}

	var rows []MessageDTO
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := pending(tx).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Limit(n).
			Find(&rows).Error
		if err != nil || len(rows) == 0 {
			return err
		}

		ids := lo.Map(rows, func(m MessageDTO, _ int) int64 { return m.ID })
		return tx.Model(&MessageDTO{}).Where("id IN ?", ids).Update("consumed_at", time.Now().UTC()).Error
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(rows, func(m MessageDTO, _ int) ports.IntakeMessage { return m.toPort() }), nil
}

func pending(db *gorm.DB) *gorm.DB {
	return db.Where("consumed_at IS NULL").Order("priority DESC").Order("id")
}
