package commands_test

import (
	"context"
	"log/slog"

	"storehouse/internal/adapters/out/memory"
	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var discard = slog.New(slog.DiscardHandler)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindByFilter(ctx context.Context, f filter.OrderFilter) (filter.Page[*order.Order], error) {
	args := m.Called(ctx, f)
	return args.Get(0).(filter.Page[*order.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, orderField string) ([]*order.Order, error) {
	args := m.Called(ctx, orderField)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id user.ID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByFilter(ctx context.Context, f filter.UserFilter) (filter.Page[*user.User], error) {
	args := m.Called(ctx, f)
	return args.Get(0).(filter.Page[*user.User]), args.Error(1)
}

// MockUoW satisfies every unit of work shape used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockIntakeChannel struct{ mock.Mock }

func (m *MockIntakeChannel) Send(ctx context.Context, o *order.Order, priority ports.Priority) error {
	args := m.Called(ctx, o, priority)
	return args.Error(0)
}

func (m *MockIntakeChannel) Browse(ctx context.Context, limit int) ([]ports.IntakeMessage, error) {
	args := m.Called(ctx, limit)
	msgs, _ := args.Get(0).([]ports.IntakeMessage)
	return msgs, args.Error(1)
}

func (m *MockIntakeChannel) Consume(ctx context.Context, n int) ([]ports.IntakeMessage, error) {
	args := m.Called(ctx, n)
	msgs, _ := args.Get(0).([]ports.IntakeMessage)
	return msgs, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishOrderStatusChanged(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// memoryFactories adapts a memory store to the handler factory shapes.
type memoryFactories struct {
	factory *memory.UnitOfWorkFactory
}

func newMemoryFactories(store *memory.Store) memoryFactories {
	return memoryFactories{factory: memory.NewUnitOfWorkFactory(store)}
}

type uowFunc func() commands.UoW

func (f uowFunc) Create() commands.UoW { return f() }

type orderUoWFunc func() commands.OrderUoW

func (f orderUoWFunc) Create() commands.OrderUoW { return f() }

type userUoWFunc func() commands.UserUoW

func (f userUoWFunc) Create() commands.UserUoW { return f() }

func (m memoryFactories) uow() commands.UoWFactory {
	return uowFunc(func() commands.UoW { return m.factory.Create() })
}

func (m memoryFactories) orders() commands.OrderUoWFactory {
	return orderUoWFunc(func() commands.OrderUoW { return m.factory.Create() })
}

func (m memoryFactories) users() commands.UserUoWFactory {
	return userUoWFunc(func() commands.UserUoW { return m.factory.Create() })
}
