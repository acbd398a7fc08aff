package order

import (
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
)

const (
	MinPrepTime = 5
	MaxPrepTime = 120

	MinEstimatedDeliveryTime     = 10
	MaxEstimatedDeliveryTime     = 60
	DefaultEstimatedDeliveryTime = 30
)

// DispatchPolicy decides whether dispatchTime follows later prepTime edits.
type DispatchPolicy int

const (
	// DispatchFreeze keeps the dispatch time computed at creation.
	DispatchFreeze DispatchPolicy = iota
	// DispatchRecompute sets dispatchTime = createdAt + prepTime after every prepTime edit.
	DispatchRecompute
)

func ParseDispatchPolicy(s string) (DispatchPolicy, error) {
	switch s {
	case "", "freeze":
		return DispatchFreeze, nil
	case "recompute":
		return DispatchRecompute, nil
	}
	return DispatchFreeze, errs.NewValueIsInvalidErrorWithCause("dispatchTimePolicy",
		fmt.Errorf("%q is neither freeze nor recompute", s))
}

func (p DispatchPolicy) String() string {
	if p == DispatchRecompute {
		return "recompute"
	}
	return "freeze"
}

func validatePrepTime(minutes int) error {
	if minutes < MinPrepTime || minutes > MaxPrepTime {
		return errs.NewValueIsOutOfRangeError("prepTime", minutes, MinPrepTime, MaxPrepTime)
	}
	return nil
}

func validateEstimatedDeliveryTime(minutes int) error {
	if minutes < MinEstimatedDeliveryTime || minutes > MaxEstimatedDeliveryTime {
		return errs.NewValueIsOutOfRangeError("estimatedDeliveryTime", minutes,
			MinEstimatedDeliveryTime, MaxEstimatedDeliveryTime)
	}
	return nil
}

func dispatchTimeFor(createdAt time.Time, prepTime int) time.Time {
	return createdAt.Add(time.Duration(prepTime) * time.Minute)
}

// StageTimes holds the first-entry timestamp of each lifecycle stage.
type StageTimes struct {
	PrepStartedAt *time.Time
	ReadyAt       *time.Time
	PickedAt      *time.Time
	OnRouteAt     *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}

// stamp sets the timestamp of status to now unless it is already set.
func (t *StageTimes) stamp(status Status, now time.Time) {
	var field **time.Time
	switch status {
	case Prep:
		field = &t.PrepStartedAt
	case Ready:
		field = &t.ReadyAt
	case Picked:
		field = &t.PickedAt
	case OnRoute:
		field = &t.OnRouteAt
	case Delivered:
		field = &t.DeliveredAt
	case Cancelled:
		field = &t.CancelledAt
	case Unknown, Pending:
		return
	}
	if *field == nil {
		at := now
		*field = &at
	}
}
