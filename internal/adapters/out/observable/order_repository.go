// Package observable decorates the outbound ports with OpenTelemetry spans
// and repository duration metrics. The decorators do not change results.
package observable

import (
	"context"
	"time"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

type OrderRepository struct {
	repo    ports.OrderRepository
	metrics *telemetry.QueryMetrics
}

func NewOrderRepository(repo ports.OrderRepository, metrics *telemetry.QueryMetrics) *OrderRepository {
	return &OrderRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Add")

	telemetry.AddSpanAttributes(span,
		attribute.Int64("order.customer_id", int64(aggregate.CustomerID())),
		attribute.String("operation", "add"),
	)

	start := time.Now()
	err := r.repo.Add(ctx, aggregate)
	r.metrics.RecordQuery(ctx, "add_order", time.Since(start).Seconds())

	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.String("order.id", aggregate.ID().String()))
	}
	telemetry.EndSpan(span, err)
	return err
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Update")

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", aggregate.ID().String()),
		attribute.String("order.status", aggregate.Status().String()),
		attribute.String("operation", "update"),
	)

	start := time.Now()
	err := r.repo.Update(ctx, aggregate)
	r.metrics.RecordQuery(ctx, "update_order", time.Since(start).Seconds())

	telemetry.EndSpan(span, err)
	return err
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Get")

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id.String()),
		attribute.String("operation", "get"),
	)

	start := time.Now()
	found, err := r.repo.Get(ctx, id)
	r.metrics.RecordQuery(ctx, "get_order", time.Since(start).Seconds())

	telemetry.EndSpan(span, err)
	return found, err
}

func (r *OrderRepository) FindByFilter(ctx context.Context, f filter.OrderFilter) (filter.Page[*order.Order], error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.FindByFilter")

	plan := f.Plan()
	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "find_by_filter"),
		attribute.Int("filter.predicates", len(plan.Predicates)),
		attribute.String("filter.sort", plan.Sort.Field),
	)

	start := time.Now()
	page, err := r.repo.FindByFilter(ctx, f)
	r.metrics.RecordQuery(ctx, "find_orders", time.Since(start).Seconds())

	if err == nil {
		telemetry.AddSpanAttributes(span,
			attribute.Int("result.count", len(page.Rows)),
			attribute.Int("result.total", page.NumberOfRows),
		)
	}
	telemetry.EndSpan(span, err)
	return page, err
}

func (r *OrderRepository) FindAll(ctx context.Context, orderField string) ([]*order.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.FindAll")

	telemetry.AddSpanAttributes(span,
		attribute.String("operation", "find_all"),
		attribute.String("filter.sort", orderField),
	)

	start := time.Now()
	orders, err := r.repo.FindAll(ctx, orderField)
	r.metrics.RecordQuery(ctx, "find_all_orders", time.Since(start).Seconds())

	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	}
	telemetry.EndSpan(span, err)
	return orders, err
}
