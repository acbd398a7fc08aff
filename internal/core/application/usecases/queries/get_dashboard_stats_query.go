package queries

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDashboardStatsQueryIsNotConstructed = errors.New(
	"GetDashboardStatsQuery must be created via NewGetDashboardStatsQuery constructor",
)

// Period limits the stats to orders created inside a time window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodAll:
		return PeriodAll, nil
	case PeriodToday, PeriodWeek, PeriodMonth:
		return Period(s), nil
	}
	return PeriodAll, errs.NewValueIsInvalidErrorWithCause("period",
		fmt.Errorf("%q is not one of today, week, month, all", s))
}

// Since returns the start of the window ending at now, or nil for PeriodAll.
// Today starts at midnight UTC; week and month are the trailing 7 and 30 days.
func (p Period) Since(now time.Time) *time.Time {
	var since time.Time
	switch p {
	case PeriodToday:
		now = now.UTC()
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		since = now.AddDate(0, 0, -7)
	case PeriodMonth:
		since = now.AddDate(0, 0, -30)
	case PeriodAll:
		return nil
	default:
		return nil
	}
	return &since
}

// GetDashboardStatsQuery computes the dashboard of the calling manager or partner.
type GetDashboardStatsQuery struct {
	actor  kernel.Actor
	period Period

	guard guard.ConstructorGuard
}

func NewGetDashboardStatsQuery(actor kernel.Actor, period string) (GetDashboardStatsQuery, error) {
	p, periodErr := ParsePeriod(period)
	if err := errors.Join(actor.ID.Validate(), actor.Role.Validate(), periodErr); err != nil {
		return GetDashboardStatsQuery{}, err
	}
	return GetDashboardStatsQuery{actor: actor, period: p, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDashboardStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardStatsQueryIsNotConstructed)
}

// DashboardStats holds exactly one of Manager and Partner, matching Role.
type DashboardStats struct {
	Role    string        `json:"role"`
	Period  Period        `json:"period"`
	Manager *ManagerStats `json:"manager,omitempty"`
	Partner *PartnerStats `json:"partner,omitempty"`
}

type ManagerStats struct {
	TotalOrders            int64            `json:"totalOrders"`
	OrdersByStatus         map[string]int64 `json:"ordersByStatus"`
	ActiveOrders           int64            `json:"activeOrders"`
	Revenue                decimal.Decimal  `json:"revenue"`
	AverageOrderValue      decimal.Decimal  `json:"averageOrderValue"`
	AverageDeliveryMinutes float64          `json:"averageDeliveryMinutes"`
	AvailablePartners      int64            `json:"availablePartners"`
	ActivePartners         int64            `json:"activePartners"`
}

type PartnerStats struct {
	AssignedOrders         int64           `json:"assignedOrders"`
	DeliveredOrders        int64           `json:"deliveredOrders"`
	CancelledOrders        int64           `json:"cancelledOrders"`
	ActiveOrders           int64           `json:"activeOrders"`
	SuccessRate            float64         `json:"successRate"`
	Earnings               decimal.Decimal `json:"earnings"`
	AverageDeliveryMinutes float64         `json:"averageDeliveryMinutes"`
	Rating                 float64         `json:"rating"`
	CompletedDeliveries    int             `json:"completedDeliveries"`
	RatedDeliveries        int             `json:"ratedDeliveries"`
}
