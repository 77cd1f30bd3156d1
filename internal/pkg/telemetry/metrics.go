package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Meter returns the service meter of the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// OrderMetrics counts lifecycle operations of the order queue.
type OrderMetrics struct {
	ordersPlacedTotal   metric.Int64Counter
	statusChangesTotal  metric.Int64Counter
	orderPlaceDuration  metric.Float64Histogram
	intakeBatchMessages metric.Int64Histogram
}

func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	m := &OrderMetrics{}

	var err error

	m.ordersPlacedTotal, err = meter.Int64Counter(
		"orders_placed_total",
		metric.WithDescription("Total number of order placement attempts"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create orders_placed_total counter: %w", err)
	}

	m.statusChangesTotal, err = meter.Int64Counter(
		"order_status_changes_total",
		metric.WithDescription("Total number of order status change attempts"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_status_changes_total counter: %w", err)
	}

	m.orderPlaceDuration, err = meter.Float64Histogram(
		"order_place_duration_seconds",
		metric.WithDescription("Duration of order placement"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create order_place_duration histogram: %w", err)
	}

	m.intakeBatchMessages, err = meter.Int64Histogram(
		"intake_batch_messages",
		metric.WithDescription("Number of messages admitted per intake batch"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create intake_batch_messages histogram: %w", err)
	}

	return m, nil
}

func (m *OrderMetrics) RecordOrderPlaced(ctx context.Context, success bool, durationSeconds float64) {
	m.ordersPlacedTotal.Add(ctx, 1, metric.WithAttributes(outcome(success)))
	m.orderPlaceDuration.Record(ctx, durationSeconds)
}

func (m *OrderMetrics) RecordStatusChange(ctx context.Context, status string, success bool) {
	m.statusChangesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
		outcome(success),
	))
}

func (m *OrderMetrics) RecordIntakeBatch(ctx context.Context, messages int) {
	m.intakeBatchMessages.Record(ctx, int64(messages))
}

// QueryMetrics measures repository calls.
type QueryMetrics struct {
	queryDuration metric.Float64Histogram
}

func NewQueryMetrics(meter metric.Meter) (*QueryMetrics, error) {
	queryDuration, err := meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Repository query duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_query_duration histogram: %w", err)
	}
	return &QueryMetrics{queryDuration: queryDuration}, nil
}

func (m *QueryMetrics) RecordQuery(ctx context.Context, operation string, durationSeconds float64) {
	m.queryDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

func outcome(success bool) attribute.KeyValue {
	if success {
		return attribute.String("outcome", "success")
	}
	return attribute.String("outcome", "error")
}
