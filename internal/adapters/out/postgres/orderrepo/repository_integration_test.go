package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"storehouse/internal/adapters/out/postgres/orderrepo"
	"storehouse/internal/adapters/out/postgres/pgtest"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate any) {
	m.Called(aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the repository against a migrated
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIdentityAndRoundTrips() {
	ctx := context.Background()

	placed := order.NewOrder(1200,
		order.NewItem(2, decimal.RequireFromString("1.50")),
		order.NewItem(1, decimal.RequireFromString("4.25")),
	)
	placed.Initialize()
	placed.CalculateTotalPrice()

	suite.Require().NoError(suite.repository.Add(ctx, placed))
	suite.True(placed.IsPersisted())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", placed)

	loaded, err := suite.repository.Get(ctx, placed.ID())
	suite.Require().NoError(err)

	suite.True(placed.CreatedAt().Equal(loaded.CreatedAt()))
	suite.Equal(user.ID(1200), loaded.CustomerID())
	suite.Equal(order.Reserved, loaded.Status())
	suite.True(decimal.RequireFromString("7.25").Equal(loaded.TotalPrice()))
	suite.Empty(cmp.Diff(statuses(placed.History()), statuses(loaded.History())))
	suite.Require().Len(loaded.Items(), 2)
	suite.Equal(2, loaded.Items()[0].Quantity)
	suite.True(decimal.RequireFromString("4.25").Equal(loaded.Items()[1].Price))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_SecondReservedOrder_Rejected() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.reserved(1500, 1, epoch)))

	second := suite.reserved(1500, 3, epoch.Add(time.Minute))
	err := suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, order.ErrDuplicateActiveOrder)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AfterCancellation_Allowed() {
	ctx := context.Background()

	first := suite.reserved(1500, 1, epoch)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(first.AddHistoryEntry(order.Cancelled))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(suite.repository.Add(ctx, suite.reserved(1500, 2, epoch.Add(time.Hour))))
	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_InvalidOrder_NothingPersisted() {
	invalid := order.NewOrder(1200)
	invalid.Initialize()
	invalid.CalculateTotalPrice()

	err := suite.repository.Add(context.Background(), invalid)

	suite.Require().ErrorIs(err, errs.ErrFieldNotValid)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsHistory() {
	ctx := context.Background()

	o := suite.reserved(42, 2, epoch)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.AddHistoryEntry(order.Pending))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, loaded.Status())
	suite.Empty(cmp.Diff([]order.Status{order.Reserved, order.Pending}, statuses(loaded.History())))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	o, err := order.RestoreOrder(kernel.NewUUID(), epoch, 42,
		[]order.Item{order.NewItem(1, decimal.Zero)},
		[]order.HistoryEntry{order.NewHistoryEntry(order.Reserved, epoch)},
		decimal.Zero)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleAggregate_Rejected() {
	ctx := context.Background()

	o := suite.reserved(42, 2, epoch)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	cancelled, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	delivered, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(cancelled.AddHistoryEntry(order.Cancelled))
	suite.Require().NoError(suite.repository.Update(ctx, cancelled))

	suite.Require().NoError(delivered.AddHistoryEntry(order.Delivered))
	err = suite.repository.Update(ctx, delivered)

	suite.Require().ErrorIs(err, order.ErrStatusCannotBeChanged)
	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, loaded.Status())
	suite.Empty(cmp.Diff([]order.Status{order.Reserved, order.Cancelled}, statuses(loaded.History())))

	var row orderrepo.OrderDTO
	suite.Require().NoError(suite.database.DB.First(&row, "id = ?", o.ID().Raw()).Error)
	suite.Equal("CANCELLED", row.CurrentStatus)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFound() {
	loaded, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(loaded)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByFilter_WindowAndCount() {
	ctx := context.Background()
	for i, customer := range []user.ID{1001, 1002, 1003} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.reserved(customer, i+1, epoch.Add(time.Duration(i)*time.Minute))))
	}

	page, err := suite.repository.FindByFilter(ctx, filter.OrderFilter{
		GenericFilter: filter.GenericFilter{Pagination: &filter.PaginationData{FirstResult: 2, MaxResults: 2}},
	})
	suite.Require().NoError(err)

	suite.Equal(3, page.NumberOfRows)
	suite.Require().Len(page.Rows, 1)
	suite.Equal(user.ID(1003), page.Row(0).CustomerID())
	suite.Nil(page.Row(1))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindByFilter_Predicates() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.reserved(10, 5, epoch)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.reserved(2000, 1, epoch.Add(time.Minute))))

	done := suite.reserved(11, 3, epoch.Add(2*time.Minute))
	suite.Require().NoError(suite.repository.Add(ctx, done))
	suite.Require().NoError(done.AddHistoryEntry(order.Delivered))
	suite.Require().NoError(suite.repository.Update(ctx, done))

	reserved := order.Reserved
	end := epoch.Add(90 * time.Second)

	tests := []struct {
		name      string
		filter    filter.OrderFilter
		customers []user.ID
	}{
		{name: "status", filter: filter.OrderFilter{Status: &reserved}, customers: []user.ID{10, 2000}},
		{name: "premium tier", filter: filter.OrderFilter{Tier: filter.PremiumTier}, customers: []user.ID{10, 11}},
		{name: "standard tier", filter: filter.OrderFilter{Tier: filter.StandardTier}, customers: []user.ID{2000}},
		{name: "date range", filter: filter.OrderFilter{StartDate: &epoch, EndDate: &end}, customers: []user.ID{10, 2000}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			page, err := suite.repository.FindByFilter(ctx, tt.filter)
			suite.Require().NoError(err)

			suite.Equal(len(tt.customers), page.NumberOfRows)
			suite.Empty(cmp.Diff(tt.customers, customers(page.Rows)))
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindAll_SortsByField() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.reserved(1, 9, epoch)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.reserved(2, 1, epoch.Add(time.Minute))))

	byPrice, err := suite.repository.FindAll(ctx, filter.FieldTotalPrice)
	suite.Require().NoError(err)
	suite.Empty(cmp.Diff([]user.ID{2, 1}, customers(byPrice)))

	_, err = suite.repository.FindAll(ctx, "volume")
	suite.Require().ErrorIs(err, errs.ErrFieldNotValid)
}

// reserved restores a RESERVED order priced one unit per item.
func (suite *OrderRepositoryIntegrationTestSuite) reserved(customerID user.ID, quantity int, createdAt time.Time) *order.Order {
	price := decimal.NewFromInt(int64(quantity))
	o, err := order.RestoreOrder(kernel.NewUUID(), createdAt, customerID,
		[]order.Item{order.NewItem(quantity, price)},
		[]order.HistoryEntry{order.NewHistoryEntry(order.Reserved, createdAt)},
		price)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.database.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func statuses(history []order.HistoryEntry) []order.Status {
	out := make([]order.Status, 0, len(history))
	for _, entry := range history {
		out = append(out, entry.Status())
	}
	return out
}

func customers(orders []*order.Order) []user.ID {
	out := make([]user.ID, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.CustomerID())
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
