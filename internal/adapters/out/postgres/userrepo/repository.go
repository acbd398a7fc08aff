package userrepo

import (
	"context"
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUserRepository(db *gorm.DB, tracker aggregateTracker) *GormUserRepository {
	return &GormUserRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewValueIsInvalidErrorWithCause("email", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update is an optimistic write, see GormOrderRepository.Update.
func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&UserDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "email", "role", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("userId", aggregate.ID())
		}
		return errs.NewVersionIsInvalidError("user", aggregate.ID(), aggregate.Version())
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock that is held until the surrounding transaction ends.
func (r *GormUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var dto UserDTO
	err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("email", email)
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto), nil
}

// FindAvailablePartners returns active available partners, best rated first.
func (r *GormUserRepository) FindAvailablePartners(ctx context.Context) ([]*user.User, error) {
	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active AND is_available", int(kernel.RoleDeliveryPartner)).
		Order("rating DESC, name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos), nil
}

// FindAvailablePartnersHoldingActiveDelivery locks and returns the partners whose
// availability flag contradicts a PICKED or ON_ROUTE order they hold.
func (r *GormUserRepository) FindAvailablePartnersHoldingActiveDelivery(ctx context.Context) ([]*user.User, error) {
	active := make([]int, 0, 2)
	for _, s := range order.ActiveDeliveryStatuses() {
		active = append(active, int(s))
	}

	var dtos []UserDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("role = ? AND is_available", int(kernel.RoleDeliveryPartner)).
		Where("EXISTS (SELECT 1 FROM orders o WHERE o.delivery_partner_id = users.id AND o.status IN ?)", active).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}
	return toDomainList(dtos), nil
}

func (r *GormUserRepository) get(db *gorm.DB, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	err := db.First(&dto, "id = ?", id.Google()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("userId", id)
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto), nil
}

func toDomainList(dtos []UserDTO) []*user.User {
	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, toDomain(dto))
	}
	return users
}
