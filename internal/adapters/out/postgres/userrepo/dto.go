// Package userrepo persists manager and partner accounts in the users table. Partner
// profile columns are unused for managers.
package userrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"not null"`
	Email        string     `gorm:"not null;uniqueIndex"`
	Phone        string
	PasswordHash []byte     `gorm:"type:bytea;not null"`
	Role         int        `gorm:"type:smallint;not null;index"`
	IsActive     bool       `gorm:"not null"`
	Partner      PartnerDTO `gorm:"embedded"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime:false"`
	Version      int        `gorm:"not null;default:0"`
}

func (UserDTO) TableName() string {
	return "users"
}

type PartnerDTO struct {
	VehicleType         int     `gorm:"type:smallint;not null;default:0"`
	IsAvailable         bool    `gorm:"not null;default:false;index"`
	Rating              float64 `gorm:"type:numeric(2,1);not null;default:5.0"`
	CompletedDeliveries int     `gorm:"not null;default:0"`
	RatedDeliveries     int     `gorm:"not null;default:0"`
}

func fromDomain(aggregate *user.User) UserDTO {
	s := aggregate.Snapshot()
	dto := UserDTO{
		ID:           s.ID.Google(),
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		PasswordHash: s.PasswordHash,
		Role:         int(s.Role),
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
		Version:      s.Version,
	}
	if s.Partner != nil {
		dto.Partner = PartnerDTO{
			VehicleType:         int(s.Partner.VehicleType),
			IsAvailable:         s.Partner.IsAvailable,
			Rating:              s.Partner.Rating,
			CompletedDeliveries: s.Partner.CompletedDeliveries,
			RatedDeliveries:     s.Partner.RatedDeliveries,
		}
	}
	return dto
}

func toDomain(dto UserDTO) *user.User {
	role := kernel.Role(dto.Role)
	var profile *user.PartnerProfile
	if role == kernel.RoleDeliveryPartner {
		profile = &user.PartnerProfile{
			VehicleType:         user.VehicleType(dto.Partner.VehicleType),
			IsAvailable:         dto.Partner.IsAvailable,
			Rating:              dto.Partner.Rating,
			CompletedDeliveries: dto.Partner.CompletedDeliveries,
			RatedDeliveries:     dto.Partner.RatedDeliveries,
		}
	}
	return user.RestoreUser(user.Snapshot{
		ID:           kernel.UUIDFromGoogle(dto.ID),
		Name:         dto.Name,
		Email:        dto.Email,
		Phone:        dto.Phone,
		PasswordHash: dto.PasswordHash,
		Role:         role,
		IsActive:     dto.IsActive,
		Partner:      profile,
		CreatedAt:    dto.CreatedAt.UTC(),
		UpdatedAt:    dto.UpdatedAt.UTC(),
		Version:      dto.Version,
	})
}
