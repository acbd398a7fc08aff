package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with its items and notes.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translate(err, aggregate)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row if its stored version still equals the aggregate's version,
// appends new tracking notes and advances the aggregate's version.
// Items never change after creation and are not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	notes := dto.Notes
	dto.Items, dto.Notes = nil, nil
	dto.Version = aggregate.Version() + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "number", "restaurant_manager_id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return translate(result.Error, aggregate)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	if len(notes) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&notes).Error; err != nil {
			return err
		}
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withChildren(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Google()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) NumberExists(ctx context.Context, number order.Number) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("number = ?", number.String()).Count(&count).Error
	return count > 0, err
}

// Find returns the orders matching filter, newest first.
func (r *GormOrderRepository) Find(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := Filtered(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var dtos []OrderDTO
	if err := r.withChildren(query).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) Count(ctx context.Context, filter ports.OrderFilter) (int64, error) {
	var count int64
	err := Filtered(r.db.WithContext(ctx).Model(&OrderDTO{}), filter).Count(&count).Error
	return count, err
}

func (r *GormOrderRepository) FindRatedDeliveredForPartner(
	ctx context.Context,
	partnerID kernel.UUID,
) ([]order.Rating, error) {
	var dtos []RatingDTO
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("rating_food_quality, rating_delivery_service, rating_overall_experience, rating_feedback, rating_rated_at").
		Where("delivery_partner_id = ? AND status = ? AND rating_overall_experience IS NOT NULL",
			partnerID.Google(), int(order.Delivered)).
		Order("rating_rated_at").
		Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	ratings := make([]order.Rating, 0, len(dtos))
	for _, dto := range dtos {
		rating, ratingErr := ratingToDomain(dto)
		if ratingErr != nil {
			return nil, ratingErr
		}
		if rating != nil {
			ratings = append(ratings, *rating)
		}
	}
	return ratings, nil
}

// Filtered applies filter to a query over the orders table. Limit and Offset are left to
// the caller.
func Filtered(db *gorm.DB, filter ports.OrderFilter) *gorm.DB {
	if filter.RestaurantManagerID != nil {
		db = db.Where("orders.restaurant_manager_id = ?", filter.RestaurantManagerID.Google())
	}
	if filter.DeliveryPartnerID != nil {
		db = db.Where("orders.delivery_partner_id = ?", filter.DeliveryPartnerID.Google())
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]int, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, int(s))
		}
		db = db.Where("orders.status IN ?", statuses)
	}
	if filter.Priority != nil {
		db = db.Where("orders.priority = ?", int(*filter.Priority))
	}
	if filter.CreatedFrom != nil {
		db = db.Where("orders.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		db = db.Where("orders.created_at < ?", *filter.CreatedTo)
	}
	if filter.ExcludeOrderID != nil {
		db = db.Where("orders.id <> ?", filter.ExcludeOrderID.Google())
	}
	return db
}

func (r *GormOrderRepository) withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Notes", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at, id") })
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Google()).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}
	return errs.NewVersionIsInvalidError("order", aggregate.ID(), aggregate.Version())
}

// translate maps the active delivery index violation to a PartnerBusy error.
func translate(err error, aggregate *order.Order) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation || pgErr.ConstraintName != ActivePartnerIndex {
		return err
	}
	partner := ""
	if id := aggregate.DeliveryPartnerID(); id != nil {
		partner = id.String()
	}
	return errs.NewPartnerBusyErrorWithCause(partner, err)
}

