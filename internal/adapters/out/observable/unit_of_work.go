package observable

import (
	"context"

	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/telemetry"
)

// UnitOfWorkFactory hands out units of work whose repositories are decorated.
type UnitOfWorkFactory struct {
	factory ports.UnitOfWorkFactory
	metrics *telemetry.QueryMetrics
}

func NewUnitOfWorkFactory(factory ports.UnitOfWorkFactory, metrics *telemetry.QueryMetrics) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{factory: factory, metrics: metrics}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &unitOfWork{UnitOfWork: f.factory.Create(), metrics: f.metrics}
}

type unitOfWork struct {
	ports.UnitOfWork
	metrics *telemetry.QueryMetrics
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "UnitOfWork.Commit")
	err := u.UnitOfWork.Commit(ctx)
	telemetry.EndSpan(span, err)
	return err
}

func (u *unitOfWork) OrderRepository() ports.OrderRepository {
	return NewOrderRepository(u.UnitOfWork.OrderRepository(), u.metrics)
}

func (u *unitOfWork) UserRepository() ports.UserRepository {
	return NewUserRepository(u.UnitOfWork.UserRepository(), u.metrics)
}
