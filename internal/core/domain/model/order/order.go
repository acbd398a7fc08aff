package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Draft carries the manager supplied fields of a new order.
// A nil TotalAmount means "sum of the items".
type Draft struct {
	Customer              Customer
	Items                 []Item
	SpecialInstructions   string
	TotalAmount           *decimal.Decimal
	Priority              Priority
	PrepTime              int
	EstimatedDeliveryTime int
}

// Changes is a partial update by the owning manager. Nil fields are left untouched.
type Changes struct {
	PrepTime              *int
	EstimatedDeliveryTime *int
	Priority              *Priority
	Status                *Status
}

// IsEmpty reports whether the update would change nothing.
func (c Changes) IsEmpty() bool {
	return c.PrepTime == nil && c.EstimatedDeliveryTime == nil && c.Priority == nil && c.Status == nil
}

// Order is the aggregate root of the lifecycle. All state changes go through its methods,
// which enforce the status graph and stamp stage timestamps.
type Order struct {
	id                    kernel.UUID
	number                Number
	restaurantManagerID   kernel.UUID
	deliveryPartnerID     *kernel.UUID
	customer              Customer
	items                 []Item
	specialInstructions   string
	totalAmount           decimal.Decimal
	status                Status
	priority              Priority
	prepTime              int
	estimatedDeliveryTime int
	dispatchTime          time.Time
	stages                StageTimes
	notes                 []TrackingNote
	rating                *Rating
	createdAt             time.Time
	updatedAt             time.Time
	version               int
	events                []pendingEvent

	isConstructed bool
}

// NewOrder creates a PENDING order owned by managerID. dispatchTime is now + prepTime.
func NewOrder(id kernel.UUID, number Number, managerID kernel.UUID, draft Draft, now time.Time) (*Order, error) {
	o := &Order{
		id:                    id,
		number:                number,
		restaurantManagerID:   managerID,
		customer:              draft.Customer,
		specialInstructions:   draft.SpecialInstructions,
		status:                Pending,
		priority:              draft.Priority,
		prepTime:              draft.PrepTime,
		estimatedDeliveryTime: draft.EstimatedDeliveryTime,
		createdAt:             now,
		updatedAt:             now,
		isConstructed:         true,
	}
	if o.priority == PriorityUnknown {
		o.priority = DefaultPriority
	}
	if o.estimatedDeliveryTime == 0 {
		o.estimatedDeliveryTime = DefaultEstimatedDeliveryTime
	}

	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		managerID.Validate(),
		o.setCustomer(draft.Customer),
		o.setItems(draft.Items, draft.TotalAmount),
		o.priority.Validate(),
		validatePrepTime(o.prepTime),
		validateEstimatedDeliveryTime(o.estimatedDeliveryTime),
	); err != nil {
		return nil, err
	}

	o.dispatchTime = dispatchTimeFor(now, o.prepTime)
	o.record(UpdateCreated, now)
	return o, nil
}

func (o *Order) setCustomer(c Customer) error {
	if c.name == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = c
	return nil
}

func (o *Order) setItems(items []Item, totalAmount *decimal.Decimal) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = append([]Item(nil), items...)
	if totalAmount == nil {
		o.totalAmount = TotalOf(items)
		return nil
	}
	if totalAmount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", fmt.Errorf("%s is negative", totalAmount))
	}
	o.totalAmount = *totalAmount
	return nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() Number { return o.number }
func (o *Order) RestaurantManagerID() kernel.UUID { return o.restaurantManagerID }
func (o *Order) DeliveryPartnerID() *kernel.UUID { return o.deliveryPartnerID }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }
func (o *Order) SpecialInstructions() string { return o.specialInstructions }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) Status() Status { return o.status }
func (o *Order) Priority() Priority { return o.priority }
func (o *Order) PrepTime() int { return o.prepTime }
func (o *Order) EstimatedDeliveryTime() int { return o.estimatedDeliveryTime }
func (o *Order) DispatchTime() time.Time { return o.dispatchTime }
func (o *Order) StageTimes() StageTimes { return o.stages }
func (o *Order) TrackingNotes() []TrackingNote { return append([]TrackingNote(nil), o.notes...) }
func (o *Order) Rating() *Rating { return o.rating }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) Version() int { return o.version }
func (o *Order) IsOwnedBy(managerID kernel.UUID) bool { return o.restaurantManagerID.IsEqual(managerID) }

// IsAssignedTo reports whether partnerID is the current delivery partner.
func (o *Order) IsAssignedTo(partnerID kernel.UUID) bool {
	return o.deliveryPartnerID != nil && o.deliveryPartnerID.IsEqual(partnerID)
}

// AdvanceVersion is called by the repository after a successful optimistic write.
func (o *Order) AdvanceVersion() {
	o.version++
}

// UpdateDetails applies a manager edit. Only PENDING and PREP orders are editable.
// A status change in Changes must be a manager transition of the lifecycle graph.
func (o *Order) UpdateDetails(changes Changes, policy DispatchPolicy, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewTerminalStateError(o.status.String(), "update")
	}
	if !o.status.IsEditableByManager() {
		return errs.NewInvalidStateError(o.status.String(), "update")
	}

	var prepErr, etaErr, priorityErr error
	if changes.PrepTime != nil {
		prepErr = validatePrepTime(*changes.PrepTime)
	}
	if changes.EstimatedDeliveryTime != nil {
		etaErr = validateEstimatedDeliveryTime(*changes.EstimatedDeliveryTime)
	}
	if changes.Priority != nil {
		priorityErr = changes.Priority.Validate()
	}
	if err := errors.Join(prepErr, etaErr, priorityErr); err != nil {
		return err
	}

	next := o.status
	if changes.Status != nil && *changes.Status != o.status {
		var err error
		if next, err = o.status.TransitionTo(*changes.Status, kernel.RoleRestaurantManager); err != nil {
			return err
		}
	}

	if changes.PrepTime != nil {
		o.prepTime = *changes.PrepTime
		if policy == DispatchRecompute {
			o.dispatchTime = dispatchTimeFor(o.createdAt, o.prepTime)
		}
	}
	if changes.EstimatedDeliveryTime != nil {
		o.estimatedDeliveryTime = *changes.EstimatedDeliveryTime
	}
	if changes.Priority != nil {
		o.priority = *changes.Priority
	}

	kind := UpdateUpdated
	switch {
	case next == Cancelled:
		kind = UpdateCancelled
	case next != o.status:
		kind = UpdateStatusChanged
	}
	o.enter(next, now)
	o.updatedAt = now
	o.record(kind, now)
	return nil
}

// Assign binds partnerID to the order and promotes a PENDING order to PREP.
// It returns the previously assigned partner when a different one is replaced.
func (o *Order) Assign(partnerID kernel.UUID, now time.Time) (*kernel.UUID, error) {
	if err := partnerID.Validate(); err != nil {
		return nil, err
	}
	if o.status.IsTerminal() {
		return nil, errs.NewTerminalStateError(o.status.String(), "assign")
	}
	if !o.status.IsAssignable() {
		return nil, errs.NewInvalidStateError(o.status.String(), "reassign")
	}

	var previous *kernel.UUID
	if o.deliveryPartnerID != nil && !o.deliveryPartnerID.IsEqual(partnerID) {
		p := *o.deliveryPartnerID
		previous = &p
	}

	if o.status == Pending {
		next, err := o.status.TransitionTo(Prep, kernel.RoleRestaurantManager)
		if err != nil {
			return nil, err
		}
		o.enter(next, now)
	}
	o.deliveryPartnerID = &partnerID
	o.updatedAt = now
	o.record(UpdateAssigned, now)
	return previous, nil
}

// Cancel moves a PENDING or PREP order to CANCELLED.
func (o *Order) Cancel(now time.Time) error {
	next, err := o.status.TransitionTo(Cancelled, kernel.RoleRestaurantManager)
	if err != nil {
		return err
	}
	o.enter(next, now)
	o.updatedAt = now
	o.record(UpdateCancelled, now)
	return nil
}

// AdvanceByPartner applies a status change requested by the delivery partner partnerID.
func (o *Order) AdvanceByPartner(partnerID kernel.UUID, to Status, now time.Time) error {
	if !o.IsAssignedTo(partnerID) {
		return errs.NewNotAssignedError(o.id.String(), partnerID.String())
	}
	next, err := o.status.TransitionTo(to, kernel.RoleDeliveryPartner)
	if err != nil {
		return err
	}
	o.enter(next, now)
	o.updatedAt = now
	o.record(UpdateStatusChanged, now)
	return nil
}

// AddNote appends to the tracking log.
func (o *Order) AddNote(note TrackingNote, now time.Time) error {
	if err := note.id.Validate(); err != nil {
		return err
	}
	o.notes = append(o.notes, note)
	o.updatedAt = now
	o.record(UpdateNoteAdded, now)
	return nil
}

// Rate stores the rating of a delivered order. A stored rating is never replaced.
func (o *Order) Rate(rating Rating, now time.Time) error {
	if o.rating != nil {
		return errs.NewAlreadyRatedError(o.id.String())
	}
	if o.status != Delivered {
		return errs.NewInvalidStateError(o.status.String(), "rate")
	}
	if err := validateScore("overallExperience", rating.overallExperience); err != nil {
		return err
	}
	o.rating = &rating
	o.updatedAt = now
	o.record(UpdateRated, now)
	return nil
}

func (o *Order) enter(status Status, now time.Time) {
	o.status = status
	o.stages.stamp(status, now)
}
