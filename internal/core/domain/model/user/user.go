package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// DefaultPartnerRating is the rating of a partner that has not been rated yet.
const DefaultPartnerRating = 5.0

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("passwordHash")
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewManager or NewPartner constructor")
)

// PartnerProfile is the delivery specific part of a partner account.
type PartnerProfile struct {
	VehicleType         VehicleType
	IsAvailable         bool
	Rating              float64
	CompletedDeliveries int
	RatedDeliveries     int
}

// User is an account of a restaurant manager or a delivery partner.
type User struct {
	// id uniquely identifies the user
	id kernel.UUID
	name  string
	email string
	phone string
	// passwordHash is opaque to the domain, see ports.PasswordHasher
	passwordHash []byte
	// role never changes after registration
	role kernel.Role
	// isActive is the soft-disable flag
	isActive bool
	// partner is nil for managers
	partner   *PartnerProfile
	createdAt time.Time
	updatedAt time.Time
	// version is the optimistic concurrency token
	version int
	events  []AvailabilityChangedEvent
	guard   guard.ConstructorGuard
}

// NewManager registers a restaurant manager.
func NewManager(id kernel.UUID, name, email, phone string, passwordHash []byte, now time.Time) (*User, error) {
	return newUser(id, name, email, phone, passwordHash, kernel.RoleRestaurantManager, nil, now)
}

// NewPartner registers a delivery partner. New partners are available and rated 5.0.
func NewPartner(
	id kernel.UUID,
	name, email, phone string,
	passwordHash []byte,
	vehicle VehicleType,
	now time.Time,
) (*User, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}
	profile := &PartnerProfile{
		VehicleType: vehicle,
		IsAvailable: true,
		Rating:      DefaultPartnerRating,
	}
	return newUser(id, name, email, phone, passwordHash, kernel.RoleDeliveryPartner, profile, now)
}

func newUser(
	id kernel.UUID,
	name, email, phone string,
	passwordHash []byte,
	role kernel.Role,
	profile *PartnerProfile,
	now time.Time,
) (*User, error) {
	u := &User{
		role:      role,
		isActive:  true,
		partner:   profile,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		role.Validate(),
	); err != nil {
		return nil, err
	}
	u.phone = strings.TrimSpace(phone)
	return u, nil
}

// Snapshot is the complete state of a User as stored by repositories.
type Snapshot struct {
	ID           kernel.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash []byte
	Role         kernel.Role
	IsActive     bool
	Partner      *PartnerProfile
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int
}

// RestoreUser rebuilds a persisted user.
func RestoreUser(s Snapshot) *User {
	var profile *PartnerProfile
	if s.Partner != nil && s.Role == kernel.RoleDeliveryPartner {
		p := *s.Partner
		profile = &p
	}
	return &User{
		id:           s.ID,
		name:         s.Name,
		email:        s.Email,
		phone:        s.Phone,
		passwordHash: s.PasswordHash,
		role:         s.Role,
		isActive:     s.IsActive,
		partner:      profile,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		version:      s.Version,
		guard:        guard.NewConstructorGuard(),
	}
}

func (u *User) Snapshot() Snapshot {
	var profile *PartnerProfile
	if u.partner != nil {
		p := *u.partner
		profile = &p
	}
	return Snapshot{
		ID:           u.id,
		Name:         u.name,
		Email:        u.email,
		Phone:        u.phone,
		PasswordHash: u.passwordHash,
		Role:         u.role,
		IsActive:     u.isActive,
		Partner:      profile,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
		Version:      u.version,
	}
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Name() string {
	return u.name
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) PasswordHash() []byte {
	return u.passwordHash
}

func (u *User) Role() kernel.Role {
	return u.role
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) Version() int {
	return u.version
}

// AdvanceVersion is called by the repository after a successful optimistic write.
func (u *User) AdvanceVersion() {
	u.version++
}

func (u *User) IsPartner() bool {
	return u.role == kernel.RoleDeliveryPartner && u.partner != nil
}

// Partner returns a copy of the partner profile, or nil for managers.
func (u *User) Partner() *PartnerProfile {
	if u.partner == nil {
		return nil
	}
	p := *u.partner
	return &p
}

// IsAvailable reports whether the partner is active and flagged available.
func (u *User) IsAvailable() bool {
	return u.IsPartner() && u.isActive && u.partner.IsAvailable
}

// Actor returns the identity the user acts under.
func (u *User) Actor() kernel.Actor {
	return kernel.Actor{ID: u.id, Role: u.role}
}

// CheckAssignable verifies the partner can be given a new order.
// Managers are reported as not found, the same as a missing partner.
func (u *User) CheckAssignable() error {
	if !u.IsPartner() {
		return errs.NewObjectNotFoundError("partnerId", u.id)
	}
	if !u.isActive {
		return errs.NewPartnerUnavailableError(u.id.String(), "partner is deactivated")
	}
	if !u.partner.IsAvailable {
		return errs.NewPartnerUnavailableError(u.id.String(), "partner is not available")
	}
	return nil
}

// SetAvailability is the partner's own availability toggle. hasActiveDelivery must
// report whether the partner currently holds a PICKED or ON_ROUTE order.
func (u *User) SetAvailability(available, hasActiveDelivery bool, now time.Time) error {
	if !u.IsPartner() {
		return errs.NewPermissionDeniedError("change availability", u.id.String())
	}
	if available && !u.isActive {
		return errs.NewPartnerUnavailableError(u.id.String(), "partner is deactivated")
	}
	if available && hasActiveDelivery {
		return errs.NewPartnerBusyError(u.id.String(), "")
	}
	u.setAvailable(available, now)
	return nil
}

// MarkBusy takes the partner off the available list after an assignment or a pickup.
func (u *User) MarkBusy(now time.Time) {
	if u.partner == nil {
		return
	}
	u.setAvailable(false, now)
}

// Release makes an active partner available again once it holds no open order.
// It reports whether the flag changed.
func (u *User) Release(now time.Time) bool {
	if u.partner == nil || !u.isActive || u.partner.IsAvailable {
		return false
	}
	u.setAvailable(true, now)
	return true
}

// RecordDelivery counts a completed delivery.
func (u *User) RecordDelivery(now time.Time) {
	if u.partner == nil {
		return
	}
	u.partner.CompletedDeliveries++
	u.updatedAt = now
}

// ApplyRatingAggregate replaces the partner rating with a freshly computed mean over
// ratedDeliveries rated orders.
func (u *User) ApplyRatingAggregate(rating float64, ratedDeliveries int, now time.Time) error {
	if u.partner == nil {
		return errs.NewObjectNotFoundError("partnerId", u.id)
	}
	if rating < 0 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 0, 5)
	}
	u.partner.Rating = rating
	u.partner.RatedDeliveries = ratedDeliveries
	u.updatedAt = now
	return nil
}

// Deactivate soft-disables the account. A deactivated partner is never available.
func (u *User) Deactivate(now time.Time) {
	u.isActive = false
	if u.partner != nil {
		u.setAvailable(false, now)
	}
	u.updatedAt = now
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an email address", email))
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash []byte) error {
	if len(hash) == 0 {
		return ErrPasswordHashIsRequired
	}
	u.passwordHash = hash
	return nil
}
