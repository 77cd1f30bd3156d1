package observable

import (
	"context"
	"time"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

type UserRepository struct {
	repo    ports.UserRepository
	metrics *telemetry.QueryMetrics
}

func NewUserRepository(repo ports.UserRepository, metrics *telemetry.QueryMetrics) *UserRepository {
	return &UserRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *UserRepository) Add(ctx context.Context, aggregate *user.User) error {
	ctx, span := telemetry.StartSpan(ctx, "UserRepository.Add")
	telemetry.AddSpanAttributes(span,
		attribute.String("user.kind", aggregate.Kind().String()),
		attribute.String("operation", "add"),
	)

	start := time.Now()
	err := r.repo.Add(ctx, aggregate)
	r.metrics.RecordQuery(ctx, "add_user", time.Since(start).Seconds())

	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.Int64("user.id", int64(aggregate.ID())))
	}
	telemetry.EndSpan(span, err)
	return err
}

func (r *UserRepository) Get(ctx context.Context, id user.ID) (*user.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "UserRepository.Get")
	telemetry.AddSpanAttributes(span,
		attribute.Int64("user.id", int64(id)),
		attribute.String("operation", "get"),
	)

	start := time.Now()
	found, err := r.repo.Get(ctx, id)
	r.metrics.RecordQuery(ctx, "get_user", time.Since(start).Seconds())

	telemetry.EndSpan(span, err)
	return found, err
}

// FindByEmail does not put the address on the span.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "UserRepository.FindByEmail")
	telemetry.AddSpanAttributes(span, attribute.String("operation", "find_by_email"))

	start := time.Now()
	found, err := r.repo.FindByEmail(ctx, email)
	r.metrics.RecordQuery(ctx, "find_user_by_email", time.Since(start).Seconds())

	telemetry.EndSpan(span, err)
	return found, err
}

func (r *UserRepository) FindByFilter(ctx context.Context, f filter.UserFilter) (filter.Page[*user.User], error) {
	ctx, span := telemetry.StartSpan(ctx, "UserRepository.FindByFilter")
	telemetry.AddSpanAttributes(span, attribute.String("operation", "find_by_filter"))

	start := time.Now()
	page, err := r.repo.FindByFilter(ctx, f)
	r.metrics.RecordQuery(ctx, "find_users", time.Since(start).Seconds())

	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.Int("result.total", page.NumberOfRows))
	}
	telemetry.EndSpan(span, err)
	return page, err
}
