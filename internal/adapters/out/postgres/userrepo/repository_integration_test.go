package userrepo_test

import (
	"context"
	"strings"
	"testing"

	"storehouse/internal/adapters/out/postgres/pgtest"
	"storehouse/internal/adapters/out/postgres/userrepo"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/pkg/errs"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate any) {
	m.Called(aggregate)
}

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *userrepo.GormUserRepository
	tracker    *MockAggregateTracker
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything).Maybe()
	suite.repository = userrepo.NewGormUserRepository(suite.database.DB, suite.tracker)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_AssignsSequentialIdentities() {
	ctx := context.Background()

	first := suite.customer("Ada Lovelace")
	second := suite.customer("Alan Turing")

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	suite.Equal(user.ID(1), first.ID())
	suite.Equal(user.ID(2), second.ID())
	suite.True(first.IsPremium())
	suite.tracker.AssertNumberOfCalls(suite.T(), "TrackAggregate", 2)
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_PresetIdentity_MovesSequence() {
	ctx := context.Background()

	preset, err := user.RestoreUser(5000, user.Customer, "Grace Hopper", gofakeit.Email(),
		[]user.Role{user.RoleCustomer}, gofakeit.Date().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, preset))

	next := suite.customer("Edsger Dijkstra")
	suite.Require().NoError(suite.repository.Add(ctx, next))

	suite.Equal(user.ID(5001), next.ID())
	suite.False(next.IsPremium())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail_IgnoresCase() {
	ctx := context.Background()

	email := gofakeit.Email()
	first, err := user.NewCustomer("Barbara Liskov", email)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := user.NewEmployee("Frances Allen", strings.ToUpper(email))
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, second)

	suite.Require().ErrorIs(err, user.ErrUserAlreadyExists)
}

func (suite *UserRepositoryIntegrationTestSuite) TestGetAndFindByEmail_RoundTrip() {
	ctx := context.Background()

	employee, err := user.NewEmployee("Ken Thompson", gofakeit.Email())
	suite.Require().NoError(err)
	suite.Require().NoError(employee.GrantRole(user.RoleAdmin))
	suite.Require().NoError(suite.repository.Add(ctx, employee))

	byID, err := suite.repository.Get(ctx, employee.ID())
	suite.Require().NoError(err)
	suite.Equal(user.Employee, byID.Kind())
	suite.ElementsMatch([]user.Role{user.RoleEmployee, user.RoleAdmin}, byID.Roles())
	suite.True(employee.CreatedAt().Equal(byID.CreatedAt()))

	byEmail, err := suite.repository.FindByEmail(ctx, strings.ToUpper(employee.Email()))
	suite.Require().NoError(err)
	suite.Equal(employee.ID(), byEmail.ID())
}

func (suite *UserRepositoryIntegrationTestSuite) TestLookups_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, 77)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.FindByEmail(ctx, gofakeit.Email())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestFindByFilter_NameFragmentAndKind() {
	ctx := context.Background()

	for _, name := range []string{"Robin Milner", "Roberto Ierusalimschy", "Russ Cox"} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.customer(name)))
	}
	staff, err := user.NewEmployee("Roberta Williams", gofakeit.Email())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, staff))

	customers := user.Customer
	page, err := suite.repository.FindByFilter(ctx, filter.UserFilter{Name: "ROB", Kind: &customers})
	suite.Require().NoError(err)

	suite.Equal(2, page.NumberOfRows)
	suite.Equal("Roberto Ierusalimschy", page.Row(0).Name())
	suite.Equal("Robin Milner", page.Row(1).Name())
}

func (suite *UserRepositoryIntegrationTestSuite) customer(name string) *user.User {
	u, err := user.NewCustomer(name, gofakeit.Email())
	suite.Require().NoError(err)
	return u
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
