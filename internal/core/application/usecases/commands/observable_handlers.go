package commands

import (
	"context"
	"log/slog"
	"time"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

type (
	PlaceOrderHandler interface {
		Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error)
	}

	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error)
	}
)

// ObservablePlaceOrderCommandHandler traces a placement and records its
// outcome and duration.
type ObservablePlaceOrderCommandHandler struct {
	handler PlaceOrderHandler
	logger  *slog.Logger
	metrics *telemetry.OrderMetrics
}

func NewObservablePlaceOrderCommandHandler(
	handler PlaceOrderHandler,
	logger *slog.Logger,
	metrics *telemetry.OrderMetrics,
) *ObservablePlaceOrderCommandHandler {
	return &ObservablePlaceOrderCommandHandler{
		handler: handler,
		logger:  logger.With("component", "place_order_handler"),
		metrics: metrics,
	}
}

func (o *ObservablePlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "PlaceOrderCommand.Handle")

	start := time.Now()
	placed, err := o.handler.Handle(ctx, cmd)
	o.metrics.RecordOrderPlaced(ctx, err == nil, time.Since(start).Seconds())

	if err != nil {
		o.logger.InfoContext(ctx, "Order was not placed",
			"customer_id", int64(cmd.CustomerID()), "error", err)
		telemetry.EndSpan(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", placed.ID().String()),
		attribute.Int64("order.customer_id", int64(placed.CustomerID())),
		attribute.Int("order.quantity", placed.CalculateTotalQuantity()),
	)
	o.logger.InfoContext(ctx, "Order placed",
		"order_id", placed.ID().String(), "customer_id", int64(placed.CustomerID()))

	telemetry.EndSpan(span, nil)
	return placed, nil
}

// ObservableUpdateOrderStatusCommandHandler traces a transition and counts it
// per target status.
type ObservableUpdateOrderStatusCommandHandler struct {
	handler UpdateOrderStatusHandler
	logger  *slog.Logger
	metrics *telemetry.OrderMetrics
}

func NewObservableUpdateOrderStatusCommandHandler(
	handler UpdateOrderStatusHandler,
	logger *slog.Logger,
	metrics *telemetry.OrderMetrics,
) *ObservableUpdateOrderStatusCommandHandler {
	return &ObservableUpdateOrderStatusCommandHandler{
		handler: handler,
		logger:  logger.With("component", "update_order_status_handler"),
		metrics: metrics,
	}
}

func (o *ObservableUpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "UpdateOrderStatusCommand.Handle")
	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.new_status", cmd.Status().String()),
	)

	updated, err := o.handler.Handle(ctx, cmd)
	o.metrics.RecordStatusChange(ctx, cmd.Status().String(), err == nil)

	if err != nil {
		o.logger.InfoContext(ctx, "Order status was not changed",
			"order_id", cmd.OrderID().String(), "status", cmd.Status().String(), "error", err)
		telemetry.EndSpan(span, err)
		return nil, err
	}

	o.logger.InfoContext(ctx, "Order status changed",
		"order_id", updated.ID().String(), "status", updated.Status().String())
	telemetry.EndSpan(span, nil)
	return updated, nil
}
