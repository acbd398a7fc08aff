package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// StatsQueriesIntegrationTestSuite runs the SQL backed queries against a seeded database:
//
//	old      PENDING    created 2025-05-01
//	pending  PENDING
//	first    DELIVERED  by fast, picked +10m, delivered +40m
//	second   DELIVERED  by fast, same timings
//	dropped  CANCELLED  assigned to fast
//	moving   ON_ROUTE   by busy
type StatsQueriesIntegrationTestSuite struct {
	suite.Suite
	pg *pgtest.Database

	start   time.Time
	manager kernel.UUID
	fast    *user.User
	busy    *user.User
	seq     int
}

func (suite *StatsQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	pg, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.pg = pg

	suite.start = time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	suite.manager = kernel.NewUUID()

	users := userrepo.NewGormUserRepository(pg.DB, noopTracker{})
	suite.fast = suite.partner("fast@example.com")
	suite.Require().NoError(suite.fast.ApplyRatingAggregate(4.5, 2, suite.start))
	suite.busy = suite.partner("busy@example.com")
	suite.busy.MarkBusy(suite.start)
	gone := suite.partner("gone@example.com")
	gone.Deactivate(suite.start)
	for _, u := range []*user.User{suite.fast, suite.busy, gone} {
		suite.Require().NoError(users.Add(ctx, u))
	}

	suite.add(suite.newOrder(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)))
	suite.add(suite.newOrder(suite.start))
	suite.add(suite.delivered(suite.fast.ID()))
	suite.add(suite.delivered(suite.fast.ID()))

	dropped := suite.newOrder(suite.start)
	_, err = dropped.Assign(suite.fast.ID(), suite.start)
	suite.Require().NoError(err)
	suite.Require().NoError(dropped.Cancel(suite.start.Add(5 * time.Minute)))
	suite.add(dropped)

	moving := suite.newOrder(suite.start)
	suite.walk(moving, suite.busy.ID(), order.OnRoute)
	suite.add(moving)
}

func (suite *StatsQueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *StatsQueriesIntegrationTestSuite) partner(email string) *user.User {
	p, err := user.NewPartner(kernel.NewUUID(), email[:4], email, "", []byte("hash"), user.VehicleScooter, suite.start)
	suite.Require().NoError(err)
	return p
}

func (suite *StatsQueriesIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	suite.seq++
	customer, err := order.NewCustomer("Grace", "", "42 Harbour Rd")
	suite.Require().NoError(err)
	item, err := order.NewItem("Ramen", 2, decimal.RequireFromString("12.50"))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Number(fmt.Sprintf("ORD%06d", suite.seq)), suite.manager,
		order.Draft{Customer: customer, Items: []order.Item{item}, PrepTime: 10}, createdAt)
	suite.Require().NoError(err)
	return o
}

// walk assigns o to partnerID and advances it to target with fixed stage offsets.
func (suite *StatsQueriesIntegrationTestSuite) walk(o *order.Order, partnerID kernel.UUID, target order.Status) {
	_, err := o.Assign(partnerID, suite.start)
	suite.Require().NoError(err)
	ready := order.Ready
	suite.Require().NoError(o.UpdateDetails(order.Changes{Status: &ready}, order.DispatchFreeze, suite.start))

	steps := []struct {
		status order.Status
		offset time.Duration
	}{
		{order.Picked, 10 * time.Minute},
		{order.OnRoute, 15 * time.Minute},
		{order.Delivered, 40 * time.Minute},
	}
	for _, step := range steps {
		if o.Status() == target {
			return
		}
		suite.Require().NoError(o.AdvanceByPartner(partnerID, step.status, suite.start.Add(step.offset)))
	}
}

func (suite *StatsQueriesIntegrationTestSuite) delivered(partnerID kernel.UUID) *order.Order {
	o := suite.newOrder(suite.start)
	suite.walk(o, partnerID, order.Delivered)
	return o
}

func (suite *StatsQueriesIntegrationTestSuite) add(o *order.Order) {
	repo := orderrepo.NewGormOrderRepository(suite.pg.DB, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
}

func (suite *StatsQueriesIntegrationTestSuite) stats(actor kernel.Actor, period string) queries.DashboardStats {
	clock := kernel.FixedClock{At: suite.start.Add(time.Hour)}
	handler := queries.NewGetDashboardStatsQueryHandler(suite.pg.DB, queries.DefaultCommissionRate, clock)

	query, err := queries.NewGetDashboardStatsQuery(actor, period)
	suite.Require().NoError(err)
	stats, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	return stats
}

func (suite *StatsQueriesIntegrationTestSuite) TestManagerDashboard_AllTime() {
	stats := suite.stats(kernel.Actor{ID: suite.manager, Role: kernel.RoleRestaurantManager}, "all")

	suite.Equal("restaurant_manager", stats.Role)
	suite.Nil(stats.Partner)
	m := stats.Manager
	suite.Require().NotNil(m)
	suite.Equal(int64(6), m.TotalOrders)
	suite.Equal(int64(2), m.OrdersByStatus["PENDING"])
	suite.Equal(int64(2), m.OrdersByStatus["DELIVERED"])
	suite.Equal(int64(1), m.OrdersByStatus["CANCELLED"])
	suite.Equal(int64(1), m.OrdersByStatus["ON_ROUTE"])
	suite.Equal(int64(0), m.OrdersByStatus["READY"])
	suite.Equal(int64(3), m.ActiveOrders)
	suite.True(decimal.NewFromInt(50).Equal(m.Revenue), m.Revenue.String())
	suite.True(decimal.NewFromInt(25).Equal(m.AverageOrderValue), m.AverageOrderValue.String())
	suite.InDelta(40.0, m.AverageDeliveryMinutes, 0.01)
	suite.Equal(int64(1), m.AvailablePartners)
	suite.Equal(int64(2), m.ActivePartners)
}

func (suite *StatsQueriesIntegrationTestSuite) TestManagerDashboard_Today() {
	stats := suite.stats(kernel.Actor{ID: suite.manager, Role: kernel.RoleRestaurantManager}, "today")

	suite.Require().NotNil(stats.Manager)
	suite.Equal(queries.PeriodToday, stats.Period)
	suite.Equal(int64(5), stats.Manager.TotalOrders)
	suite.Equal(int64(1), stats.Manager.OrdersByStatus["PENDING"])
}

func (suite *StatsQueriesIntegrationTestSuite) TestPartnerDashboard() {
	stats := suite.stats(kernel.Actor{ID: suite.fast.ID(), Role: kernel.RoleDeliveryPartner}, "")

	suite.Nil(stats.Manager)
	p := stats.Partner
	suite.Require().NotNil(p)
	suite.Equal(int64(3), p.AssignedOrders)
	suite.Equal(int64(2), p.DeliveredOrders)
	suite.Equal(int64(1), p.CancelledOrders)
	suite.Equal(int64(0), p.ActiveOrders)
	suite.InDelta(66.7, p.SuccessRate, 0.001)
	suite.True(decimal.NewFromInt(5).Equal(p.Earnings), p.Earnings.String())
	suite.InDelta(30.0, p.AverageDeliveryMinutes, 0.01)
	suite.InDelta(4.5, p.Rating, 0.001)
	suite.Equal(2, p.RatedDeliveries)
}

func (suite *StatsQueriesIntegrationTestSuite) TestPartnerDashboard_WithActiveDelivery() {
	stats := suite.stats(kernel.Actor{ID: suite.busy.ID(), Role: kernel.RoleDeliveryPartner}, "week")

	p := stats.Partner
	suite.Require().NotNil(p)
	suite.Equal(int64(1), p.AssignedOrders)
	suite.Equal(int64(1), p.ActiveOrders)
	suite.Zero(p.SuccessRate)
	suite.True(p.Earnings.IsZero())
}

func (suite *StatsQueriesIntegrationTestSuite) TestPartnerDashboard_UnknownPartner() {
	handler := queries.NewGetDashboardStatsQueryHandler(suite.pg.DB, queries.DefaultCommissionRate, kernel.SystemClock{})
	query, err := queries.NewGetDashboardStatsQuery(kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleDeliveryPartner}, "")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StatsQueriesIntegrationTestSuite) TestListAvailablePartners() {
	handler := queries.NewListAvailablePartnersQueryHandler(suite.pg.DB)

	query, err := queries.NewListAvailablePartnersQuery(kernel.Actor{ID: suite.manager, Role: kernel.RoleRestaurantManager})
	suite.Require().NoError(err)
	partners, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(partners, 1)
	suite.Equal(suite.fast.ID(), partners[0].ID)
	suite.Equal("scooter", partners[0].VehicleType)
	suite.InDelta(4.5, partners[0].Rating, 0.001)

	query, err = queries.NewListAvailablePartnersQuery(kernel.Actor{ID: suite.fast.ID(), Role: kernel.RoleDeliveryPartner})
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrPermissionDenied)
}

func TestStatsQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StatsQueriesIntegrationTestSuite))
}
