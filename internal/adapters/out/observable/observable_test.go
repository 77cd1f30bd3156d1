package observable_test

import (
	"context"
	"errors"
	"testing"

	"storehouse/internal/adapters/out/memory"
	"storehouse/internal/adapters/out/observable"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"
	"storehouse/internal/pkg/errs"
	"storehouse/internal/pkg/telemetry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	_ ports.OrderRepository   = (*observable.OrderRepository)(nil)
	_ ports.UserRepository    = (*observable.UserRepository)(nil)
	_ ports.UnitOfWorkFactory = (*observable.UnitOfWorkFactory)(nil)
	_ ports.EventPublisher    = (*observable.EventPublisher)(nil)
)

type fixture struct {
	spans   *tracetest.InMemoryExporter
	reader  *sdkmetric.ManualReader
	metrics *telemetry.QueryMetrics
}

func setup(t *testing.T) fixture {
	t.Helper()

	spans := tracetest.NewInMemoryExporter()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans)))

	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewQueryMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test"))
	require.NoError(t, err)

	return fixture{spans: spans, reader: reader, metrics: metrics}
}

func (f fixture) operations(t *testing.T) []string {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, f.reader.Collect(context.Background(), &rm))

	var ops []string
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "db_query_duration_seconds" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Histogram[float64]).DataPoints {
				op, _ := dp.Attributes.Value("operation")
				ops = append(ops, op.AsString())
			}
		}
	}
	return ops
}

func reserved(customerID user.ID) *order.Order {
	o := order.NewOrder(customerID, order.NewItem(2, decimal.RequireFromString("4.00")))
	o.Initialize()
	o.CalculateTotalPrice()
	return o
}

func TestUnitOfWorkFactory_DecoratesRepositories(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	factory := observable.NewUnitOfWorkFactory(memory.NewUnitOfWorkFactory(memory.NewStore()), f.metrics)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	placed := reserved(5000)
	require.NoError(t, uow.OrderRepository().Add(ctx, placed))
	require.NoError(t, uow.Commit(ctx))

	found, err := factory.Create().OrderRepository().Get(ctx, placed.ID())
	require.NoError(t, err)
	assert.True(t, found.IsEqual(placed))

	names := make([]string, 0, len(f.spans.GetSpans()))
	for _, s := range f.spans.GetSpans() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"OrderRepository.Add", "UnitOfWork.Commit", "OrderRepository.Get"}, names)
	assert.ElementsMatch(t, []string{"add_order", "get_order"}, f.operations(t))
}

func TestOrderRepository_RecordsErrors(t *testing.T) {
	f := setup(t)
	repo := observable.NewOrderRepository(memory.NewOrderRepository(memory.NewStore()), f.metrics)

	_, err := repo.Get(context.Background(), kernel.NewUUID())

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	spans := f.spans.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, []string{"get_order"}, f.operations(t))
}

func TestUserRepository_PassesResultsThrough(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	repo := observable.NewUserRepository(memory.NewUserRepository(memory.NewStore()), f.metrics)

	u, err := user.NewCustomer("Grace Hopper", "grace@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, u))

	found, err := repo.FindByEmail(ctx, "GRACE@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID(), found.ID())

	for _, s := range f.spans.GetSpans() {
		assert.Equal(t, codes.Ok, s.Status.Code, s.Name)
	}
	assert.ElementsMatch(t, []string{"add_user", "find_user_by_email"}, f.operations(t))
}

type failingPublisher struct{}

func (failingPublisher) PublishOrderPlaced(context.Context, *order.Order) error {
	return errors.New("broker down")
}

func (failingPublisher) PublishOrderStatusChanged(context.Context, *order.Order) error {
	return nil
}

func TestEventPublisher(t *testing.T) {
	f := setup(t)
	publisher := observable.NewEventPublisher(failingPublisher{})
	o := reserved(5000)
	require.NoError(t, o.AssignID(kernel.NewUUID()))

	require.Error(t, publisher.PublishOrderPlaced(context.Background(), o))
	require.NoError(t, publisher.PublishOrderStatusChanged(context.Background(), o))

	spans := f.spans.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, codes.Ok, spans[1].Status.Code)
}
