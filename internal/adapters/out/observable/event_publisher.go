package observable

import (
	"context"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

type EventPublisher struct {
	publisher ports.EventPublisher
}

func NewEventPublisher(publisher ports.EventPublisher) *EventPublisher {
	return &EventPublisher{publisher: publisher}
}

func (p *EventPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "EventPublisher.PublishOrderPlaced")
	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", o.ID().String()),
		attribute.String("event.type", "order.placed"),
	)

	err := p.publisher.PublishOrderPlaced(ctx, o)
	telemetry.EndSpan(span, err)
	return err
}

func (p *EventPublisher) PublishOrderStatusChanged(ctx context.Context, o *order.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "EventPublisher.PublishOrderStatusChanged")
	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", o.ID().String()),
		attribute.String("order.status", o.Status().String()),
		attribute.String("event.type", "order.status_changed"),
	)

	err := p.publisher.PublishOrderStatusChanged(ctx, o)
	telemetry.EndSpan(span, err)
	return err
}
