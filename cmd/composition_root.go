package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpin "storehouse/internal/adapters/in/http"
	"storehouse/internal/adapters/out/kafka"
	"storehouse/internal/adapters/out/memory"
	"storehouse/internal/adapters/out/observable"
	"storehouse/internal/adapters/out/postgres"
	"storehouse/internal/adapters/out/postgres/intakequeue"
	"storehouse/internal/adapters/out/postgres/migrations"
	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/application/usecases/queries"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/services"
	"storehouse/internal/core/ports"
	"storehouse/internal/jobs"
	"storehouse/internal/pkg/telemetry"

	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type CompositionRoot struct {
	cfg          Config
	logger       *slog.Logger
	uowFactory   ports.UnitOfWorkFactory
	intake       ports.IntakeChannel
	events       ports.EventPublisher
	orderMetrics *telemetry.OrderMetrics
	closers      []func() error
}

// NewCompositionRoot connects the configured store and event publisher.
// Close releases both.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	orderMetrics, err := telemetry.NewOrderMetrics(telemetry.Meter())
	if err != nil {
		return nil, err
	}
	queryMetrics, err := telemetry.NewQueryMetrics(telemetry.Meter())
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:          cfg,
		logger:       logger,
		orderMetrics: orderMetrics,
	}

	var factory ports.UnitOfWorkFactory
	switch cfg.Store.Driver {
	case StoreDriverMemory:
		store := memory.NewStore()
		factory = memory.NewUnitOfWorkFactory(store)
		c.intake = memory.NewIntakeChannel()
	case StoreDriverPostgres:
		db, err := c.openDatabase()
		if err != nil {
			return nil, err
		}
		factory = postgres.NewGormUnitOfWorkFactory(db)
		c.intake = intakequeue.NewGormIntakeChannel(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	c.uowFactory = observable.NewUnitOfWorkFactory(factory, queryMetrics)

	brokers := kafka.ParseBrokers(cfg.Kafka.Brokers)
	if len(brokers) == 0 {
		logger.Info("No Kafka brokers configured, order events are dropped")
		c.events = kafka.NoopEventPublisher{}
	} else {
		publisher := kafka.NewEventPublisher(brokers, cfg.Kafka.OrderEventsTopic)
		c.closers = append(c.closers, publisher.Close)
		c.events = observable.NewEventPublisher(publisher)
	}

	logger.Info("Composition root ready",
		"store", cfg.Store.Driver,
		"kafka_brokers", len(brokers),
	)
	return c, nil
}

func (c *CompositionRoot) openDatabase() (*gorm.DB, error) {
	if c.cfg.Database.AutoMigrate {
		if err := migrations.Up(c.cfg.DSN()); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(gormpg.Open(c.cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, sqlDB.Close)
	return db, nil
}

// Close releases resources in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) OrderMetrics() *telemetry.OrderMetrics {
	return c.orderMetrics
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewPlaceOrderCommandHandler(f, c.intake, c.events, c.logger)
	return commands.NewObservablePlaceOrderCommandHandler(handler, c.logger, c.orderMetrics)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewUpdateOrderStatusCommandHandler(f, c.events, c.logger)
	return commands.NewObservableUpdateOrderStatusCommandHandler(handler, c.logger, c.orderMetrics)
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f)
}

func (c *CompositionRoot) CreateReceiveOrdersCommandHandler() commands.ReceiveOrdersCommandHandler {
	return commands.NewReceiveOrdersCommandHandler(c.intake, services.NewIntakeBatcher(order.MaxLoad))
}

func (c *CompositionRoot) CreateCancelActiveOrderCommandHandler() commands.CancelActiveOrderCommandHandler {
	return commands.NewCancelActiveOrderCommandHandler(c.orders(), c.CreateUpdateOrderStatusCommandHandler())
}

func (c *CompositionRoot) orders() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) users() ports.UserRepository {
	return c.uowFactory.Create().UserRepository()
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders())
}

func (c *CompositionRoot) CreateFindOrdersQueryHandler() queries.FindOrdersQueryHandler {
	return queries.NewFindOrdersQueryHandler(c.orders())
}

func (c *CompositionRoot) CreateFindAllOrdersQueryHandler() queries.FindAllOrdersQueryHandler {
	return queries.NewFindAllOrdersQueryHandler(c.orders())
}

func (c *CompositionRoot) CreateGetReservedOrdersQueryHandler() queries.GetReservedOrdersQueryHandler {
	return queries.NewGetReservedOrdersQueryHandler(c.orders())
}

func (c *CompositionRoot) CreateGetQueuePositionQueryHandler() queries.GetQueuePositionQueryHandler {
	return queries.NewGetQueuePositionQueryHandler(services.NewQueueCalculator(c.orders()))
}

func (c *CompositionRoot) CreateGetQueueWaitTimeQueryHandler() queries.GetQueueWaitTimeQueryHandler {
	return queries.NewGetQueueWaitTimeQueryHandler(services.NewQueueCalculator(c.orders()))
}

func (c *CompositionRoot) CreateGetCustomerStandingQueryHandler() queries.GetCustomerStandingQueryHandler {
	return queries.NewGetCustomerStandingQueryHandler(c.users(), services.NewQueueCalculator(c.orders()))
}

func (c *CompositionRoot) CreateGetQueueReportQueryHandler() queries.GetQueueReportQueryHandler {
	orders := c.orders()
	return queries.NewGetQueueReportQueryHandler(orders, services.NewQueueCalculator(orders))
}

func (c *CompositionRoot) CreateFindUsersQueryHandler() queries.FindUsersQueryHandler {
	return queries.NewFindUsersQueryHandler(c.users())
}

func (c *CompositionRoot) CreateGetUserByEmailQueryHandler() queries.GetUserByEmailQueryHandler {
	return queries.NewGetUserByEmailQueryHandler(c.users())
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		PlaceOrder:          c.CreatePlaceOrderCommandHandler(),
		UpdateOrderStatus:   c.CreateUpdateOrderStatusCommandHandler(),
		CancelActiveOrder:   c.CreateCancelActiveOrderCommandHandler(),
		ReceiveOrders:       c.CreateReceiveOrdersCommandHandler(),
		CreateUser:          c.CreateCreateUserCommandHandler(),
		GetOrder:            c.CreateGetOrderQueryHandler(),
		FindOrders:          c.CreateFindOrdersQueryHandler(),
		FindAllOrders:       c.CreateFindAllOrdersQueryHandler(),
		GetReservedOrders:   c.CreateGetReservedOrdersQueryHandler(),
		GetQueuePosition:    c.CreateGetQueuePositionQueryHandler(),
		GetQueueWaitTime:    c.CreateGetQueueWaitTimeQueryHandler(),
		GetCustomerStanding: c.CreateGetCustomerStandingQueryHandler(),
		GetQueueReport:      c.CreateGetQueueReportQueryHandler(),
		FindUsers:           c.CreateFindUsersQueryHandler(),
		GetUserByEmail:      c.CreateGetUserByEmailQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReceiveOrdersCommandHandler(),
		c.orderMetrics,
		c.cfg.Intake.Schedule,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
