package queries

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCommissionRate is the share of a delivered order's total a partner earns.
var DefaultCommissionRate = decimal.RequireFromString("0.10")

// GetDashboardStatsQueryHandler aggregates order counts and amounts in SQL.
type GetDashboardStatsQueryHandler struct {
	db             *gorm.DB
	commissionRate decimal.Decimal
	clock          kernel.Clock
}

func NewGetDashboardStatsQueryHandler(
	db *gorm.DB,
	commissionRate decimal.Decimal,
	clock kernel.Clock,
) GetDashboardStatsQueryHandler {
	return GetDashboardStatsQueryHandler{db: db, commissionRate: commissionRate, clock: clock}
}

// statusTotal is one GROUP BY status row. Minutes is only meaningful for DELIVERED.
type statusTotal struct {
	Status  order.Status
	Orders  int64
	Amount  decimal.Decimal
	Minutes float64
}

func (h GetDashboardStatsQueryHandler) Handle(ctx context.Context, query GetDashboardStatsQuery) (DashboardStats, error) {
	if err := query.Validate(); err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{Role: query.actor.Role.String(), Period: query.period}
	since := query.period.Since(h.clock.Now())

	switch query.actor.Role {
	case kernel.RoleRestaurantManager:
		manager, err := h.managerStats(ctx, since)
		if err != nil {
			return DashboardStats{}, err
		}
		stats.Manager = &manager
	case kernel.RoleDeliveryPartner:
		partner, err := h.partnerStats(ctx, query.actor.ID, since)
		if err != nil {
			return DashboardStats{}, err
		}
		stats.Partner = &partner
	case kernel.RoleUnknown:
		return DashboardStats{}, errs.NewPermissionDeniedError("read dashboard", query.actor.ID.String())
	}

	return stats, nil
}

func (h GetDashboardStatsQueryHandler) managerStats(ctx context.Context, since *time.Time) (ManagerStats, error) {
	totals, err := h.statusTotals(ctx, "created_at", since, nil)
	if err != nil {
		return ManagerStats{}, err
	}

	stats := ManagerStats{
		OrdersByStatus:    make(map[string]int64, len(order.AllStatuses())),
		Revenue:           decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, s := range order.AllStatuses() {
		stats.OrdersByStatus[s.String()] = 0
	}
	for _, t := range totals {
		stats.TotalOrders += t.Orders
		stats.OrdersByStatus[t.Status.String()] = t.Orders
		if !t.Status.IsTerminal() {
			stats.ActiveOrders += t.Orders
		}
		if t.Status == order.Delivered {
			stats.Revenue = t.Amount
			stats.AverageDeliveryMinutes = round1(t.Minutes)
			if t.Orders > 0 {
				stats.AverageOrderValue = t.Amount.Div(decimal.NewFromInt(t.Orders)).Round(2)
			}
		}
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE is_active AND is_available),
			COUNT(*) FILTER (WHERE is_active)
		FROM users
		WHERE role = ?
	`, int(kernel.RoleDeliveryPartner)).Row()
	if err := row.Scan(&stats.AvailablePartners, &stats.ActivePartners); err != nil {
		return ManagerStats{}, err
	}

	return stats, nil
}

func (h GetDashboardStatsQueryHandler) partnerStats(
	ctx context.Context,
	partnerID kernel.UUID,
	since *time.Time,
) (PartnerStats, error) {
	stats := PartnerStats{Earnings: decimal.Zero}

	row := h.db.WithContext(ctx).Raw(`
		SELECT rating, completed_deliveries, rated_deliveries
		FROM users
		WHERE id = ? AND role = ?
	`, partnerID.Google(), int(kernel.RoleDeliveryPartner)).Row()
	err := row.Scan(&stats.Rating, &stats.CompletedDeliveries, &stats.RatedDeliveries)
	if errors.Is(err, sql.ErrNoRows) {
		return PartnerStats{}, errs.NewObjectNotFoundError("partnerId", partnerID)
	}
	if err != nil {
		return PartnerStats{}, err
	}

	totals, err := h.statusTotals(ctx, "picked_at", since, &partnerID)
	if err != nil {
		return PartnerStats{}, err
	}
	for _, t := range totals {
		stats.AssignedOrders += t.Orders
		switch {
		case t.Status == order.Delivered:
			stats.DeliveredOrders = t.Orders
			stats.Earnings = t.Amount.Mul(h.commissionRate).Round(2)
			stats.AverageDeliveryMinutes = round1(t.Minutes)
		case t.Status == order.Cancelled:
			stats.CancelledOrders = t.Orders
		default:
			stats.ActiveOrders += t.Orders
		}
	}
	if finished := stats.DeliveredOrders + stats.CancelledOrders; finished > 0 {
		stats.SuccessRate = round1(float64(stats.DeliveredOrders) * 100 / float64(finished))
	}

	return stats, nil
}

// statusTotals groups orders created since by status. The average delivery time of each
// group is measured from the startColumn timestamp to delivered_at.
func (h GetDashboardStatsQueryHandler) statusTotals(
	ctx context.Context,
	startColumn string,
	since *time.Time,
	partnerID *kernel.UUID,
) ([]statusTotal, error) {
	query := h.db.WithContext(ctx).Table("orders").Select(
		"status, COUNT(*), COALESCE(SUM(total_amount), 0), " +
			"COALESCE(AVG(EXTRACT(EPOCH FROM (delivered_at - " + startColumn + ")) / 60), 0)",
	)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if partnerID != nil {
		query = query.Where("delivery_partner_id = ?", partnerID.Google())
	}

	rows, err := query.Group("status").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]statusTotal, 0, len(order.AllStatuses()))
	for rows.Next() {
		var t statusTotal
		var status int
		if err = rows.Scan(&status, &t.Orders, &t.Amount, &t.Minutes); err != nil {
			return nil, err
		}
		t.Status = order.Status(status)
		totals = append(totals, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
