// Package kafka publishes order lifecycle events to a Kafka topic.
//
// Messages are keyed by order id so that the events of one order land on one
// partition in publication order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storehouse/internal/core/domain/model/order"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the JSON payload of both event types.
type OrderEvent struct {
	Type       string          `json:"type"`
	OrderID    string          `json:"orderId"`
	CustomerID int64           `json:"customerId"`
	Status     string          `json:"status"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	OccurredAt time.Time       `json:"occurredAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// EventPublisher implements ports.EventPublisher on a kafka-go Writer.
type EventPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewEventPublisher writes to topic on brokers with hash partitioning and
// leader acknowledgement.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return newEventPublisher(&kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
	})
}

func newEventPublisher(writer messageWriter) *EventPublisher {
	return &EventPublisher{
		writer: writer,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (p *EventPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, EventOrderPlaced, o)
}

func (p *EventPublisher) PublishOrderStatusChanged(ctx context.Context, o *order.Order) error {
	return p.publish(ctx, EventOrderStatusChanged, o)
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

func (p *EventPublisher) publish(ctx context.Context, eventType string, o *order.Order) error {
	event := OrderEvent{
		Type:       eventType,
		OrderID:    o.ID().String(),
		CustomerID: int64(o.CustomerID()),
		Status:     o.Status().String(),
		Quantity:   o.CalculateTotalQuantity(),
		TotalPrice: o.TotalPrice(),
		OccurredAt: p.now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Key:     []byte(event.OrderID),
		Value:   data,
		Time:    event.OccurredAt,
		Headers: []kafkago.Header{{Key: "event-type", Value: []byte(eventType)}},
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NoopEventPublisher drops every event. It is used when no brokers are configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishOrderPlaced(context.Context, *order.Order) error {
	return nil
}

func (NoopEventPublisher) PublishOrderStatusChanged(context.Context, *order.Order) error {
	return nil
}
